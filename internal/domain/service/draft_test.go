package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDrafts stores states as JSON the way the redis storage does.
type memoryDrafts map[int64][]byte

func (m memoryDrafts) Get(_ context.Context, userID int64) (SessionState, error) {
	data, ok := m[userID]
	if !ok {
		return SessionState{}, errorz.ErrDraftNotFound
	}
	var state SessionState
	err := json.Unmarshal(data, &state)
	return state, err
}

func (m memoryDrafts) Set(_ context.Context, userID int64, state SessionState) error {
	data, err := json.Marshal(state)
	m[userID] = data
	return err
}

func (m memoryDrafts) Clear(_ context.Context, userID int64) error {
	delete(m, userID)
	return nil
}

func newDraftFixture(t *testing.T) (*DraftService, cardFixture) {
	t.Helper()
	f := newCardFixture(t)
	drafts := NewDraftService(memoryDrafts{}, f.svc, f.saver, logger.Nop(), DraftServiceConfig{
		Origin: "https://x",
		Export: ExportOptions{DisableSettle: true},
	})
	return drafts, f
}

func TestDraftLifecycle(t *testing.T) {
	drafts, f := newDraftFixture(t)
	ctx := context.Background()

	_, err := drafts.Open(ctx, 1)
	assert.ErrorIs(t, err, errorz.ErrDraftNotFound)

	_, err = drafts.Start(ctx, 1, "https://y.com", "")
	require.NoError(t, err)

	_, err = drafts.Edit(ctx, 1, func(s *Session) error {
		style := s.Style()
		style.Foreground = "#ff0000"
		s.SetStyle(style)
		_, errAdd := s.AddField(entity.FieldText)
		return errAdd
	})
	require.NoError(t, err)

	session, err := drafts.Open(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", session.Style().Foreground)
	assert.True(t, session.CanUndo(), "history survives the round trip")
	require.NotNil(t, session.Template())
	assert.Len(t, session.Template().Fields, 1)
	assert.Equal(t, "https://x/r?u=https%3A%2F%2Fy.com", session.Recompute().Payload)

	blob, err := drafts.Preview(ctx, 1, FormatPNG, true)
	require.NoError(t, err)
	assert.Zero(t, drafts.exporters.len(), "the preview exporter is released")
	_, err = png.Decode(bytes.NewReader(blob.Data))
	require.NoError(t, err)

	record, err := drafts.Commit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", record.Styling.Foreground)
	assert.Contains(t, f.records.records, record.ID)

	session, err = drafts.Open(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://x/r/"+record.ID, session.Recompute().Payload)

	_, err = drafts.Edit(ctx, 1, func(s *Session) error {
		s.SetContent("https://z.com")
		return nil
	})
	require.NoError(t, err)
	again, err := drafts.Commit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, record.ID, again.ID)
	assert.Equal(t, "https://z.com", f.records.records[record.ID].Content)

	require.NoError(t, drafts.Discard(ctx, 1))
	_, err = drafts.Open(ctx, 1)
	assert.ErrorIs(t, err, errorz.ErrDraftNotFound)
}

func TestDraftEditFailureIsNotSaved(t *testing.T) {
	drafts, _ := newDraftFixture(t)
	ctx := context.Background()

	_, err := drafts.Start(ctx, 1, "hello", entity.TypeText)
	require.NoError(t, err)

	_, err = drafts.Edit(ctx, 1, func(s *Session) error {
		s.SetContent("changed")
		return s.RemoveField("missing")
	})
	assert.ErrorIs(t, err, errorz.ErrFieldNotFound)

	session, err := drafts.Open(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", session.State().Content)
}
