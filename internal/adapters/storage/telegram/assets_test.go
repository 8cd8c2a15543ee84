package telegram

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type fakeBot struct {
	sent    []*tele.Document
	deleted []tele.Editable
	files   map[string][]byte
}

func (b *fakeBot) Send(_ tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	doc := what.(*tele.Document)
	b.sent = append(b.sent, doc)
	return &tele.Message{ID: 42, Document: &tele.Document{File: tele.File{FileID: "file-1"}}}, nil
}

func (b *fakeBot) Delete(msg tele.Editable) error {
	b.deleted = append(b.deleted, msg)
	return nil
}

func (b *fakeBot) FileByID(fileID string) (tele.File, error) {
	return tele.File{FileID: fileID}, nil
}

func (b *fakeBot) File(file *tele.File) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.files[file.FileID])), nil
}

func TestAssetStore(t *testing.T) {
	bot := &fakeBot{files: map[string][]byte{"file-1": []byte("logo")}}
	store := &AssetStore{bot: bot, chat: &tele.Chat{ID: -100}}
	ctx := context.Background()

	asset, err := store.Upload(ctx, "logo.png", []byte("logo"))
	require.NoError(t, err)
	assert.Equal(t, "-100:42", asset.ID)
	assert.Equal(t, "tg://file-1", asset.URL)
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "logo.png", bot.sent[0].FileName)

	rc, err := store.Open(ctx, asset.URL)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "logo", string(data))

	_, err = store.Open(ctx, "https://example.com/logo.png")
	assert.ErrorIs(t, err, errorz.ErrInvalidAssetID)

	require.NoError(t, store.Delete(ctx, asset.ID))
	require.Len(t, bot.deleted, 1)
	messageID, chatID := bot.deleted[0].MessageSig()
	assert.Equal(t, "42", messageID)
	assert.Equal(t, int64(-100), chatID)

	assert.ErrorIs(t, store.Delete(ctx, "garbage"), errorz.ErrInvalidAssetID)
	assert.ErrorIs(t, store.Delete(ctx, "x:1"), errorz.ErrInvalidAssetID)
}
