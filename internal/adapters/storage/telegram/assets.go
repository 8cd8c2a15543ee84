package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	tele "gopkg.in/telebot.v3"
)

// refPrefix marks image references that point to a file of the storage chat.
const refPrefix = "tg://"

type botAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
	FileByID(fileID string) (tele.File, error)
	File(file *tele.File) (io.ReadCloser, error)
}

// AssetStore keeps uploaded images as documents of a private storage chat.
// The asset id is "<chat id>:<message id>", the reference is "tg://<file id>".
type AssetStore struct {
	bot  botAPI
	chat *tele.Chat
}

func NewAssetStore(bot *tele.Bot, chatID int64) (*AssetStore, error) {
	chat, err := bot.ChatByID(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage chat: %v", err)
	}
	return &AssetStore{bot: bot, chat: chat}, nil
}

func (s *AssetStore) Upload(_ context.Context, name string, data []byte) (service.Asset, error) {
	msg, err := s.bot.Send(s.chat, &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: name,
	})
	if err != nil {
		return service.Asset{}, err
	}
	if msg.Document == nil {
		return service.Asset{}, fmt.Errorf("storage chat returned no document for %s", name)
	}
	return service.Asset{
		ID:  fmt.Sprintf("%d:%d", s.chat.ID, msg.ID),
		URL: refPrefix + msg.Document.FileID,
	}, nil
}

func (s *AssetStore) Delete(_ context.Context, id string) error {
	chatID, msgID, ok := strings.Cut(id, ":")
	if !ok {
		return errorz.ErrInvalidAssetID
	}
	chat, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return errorz.ErrInvalidAssetID
	}
	if _, err = strconv.Atoi(msgID); err != nil {
		return errorz.ErrInvalidAssetID
	}
	return s.bot.Delete(&tele.StoredMessage{MessageID: msgID, ChatID: chat})
}

func (s *AssetStore) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	fileID, ok := strings.CutPrefix(ref, refPrefix)
	if !ok || fileID == "" {
		return nil, errorz.ErrInvalidAssetID
	}
	file, err := s.bot.FileByID(fileID)
	if err != nil {
		return nil, err
	}
	return s.bot.File(&file)
}
