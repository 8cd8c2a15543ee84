package service

import (
	"context"
	"testing"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/layout"
	"github.com/Badsnus/qr-studio/internal/domain/payload"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(entity.StyleConfig{Foreground: "#112233"}, SessionOptions{
		Origins:  payload.NewOriginChain("https://x", ""),
		Exporter: newTestExporter(&memorySaver{}),
		Now:      func() time.Time { return time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) },
	})
}

func TestSessionRecomputeOnlyWhenDirty(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("https://y.com")
	require.True(t, s.Dirty())

	snap := s.Recompute()
	assert.False(t, s.Dirty())
	assert.Equal(t, "https://x/r?u=https%3A%2F%2Fy.com", snap.Payload)
	assert.Equal(t, entity.LevelMedium, snap.Assembled.Level)
	assert.Nil(t, snap.Composition)

	s.SetIdentifier("abc")
	assert.True(t, s.Dirty())
	assert.Equal(t, "https://x/r/abc", s.Recompute().Payload)

	s.SetType(entity.TypeText)
	assert.Equal(t, "https://y.com", s.Recompute().Payload)
}

func TestSessionSnapshotSurfacesLevelOverride(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("hello")
	s.SetStyle(entity.StyleConfig{Level: entity.LevelLow, Logo: "data:image/png;base64,"})

	snap := s.Recompute()
	assert.Equal(t, entity.LevelLow, snap.Assembled.Requested)
	assert.Equal(t, entity.LevelHigh, snap.Assembled.Level)
	assert.True(t, snap.Assembled.Overridden())
}

func TestSessionSetSizeOverridesStyle(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("hello")
	s.SetSize(512)
	snap := s.Recompute()
	assert.Equal(t, 512, snap.Style.Size)
	assert.Equal(t, 512, snap.Assembled.Options.Size)
}

func TestSessionUndo(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.CanUndo())
	assert.False(t, s.Undo())

	s.SetStyle(entity.StyleConfig{Foreground: "#ff0000"})
	s.SetStyle(entity.StyleConfig{Foreground: "#00ff00"})
	require.True(t, s.CanUndo())

	require.True(t, s.Undo())
	assert.Equal(t, "#ff0000", s.Recompute().Style.Foreground)
	require.True(t, s.Undo())
	assert.Equal(t, "#112233", s.Recompute().Style.Foreground)
	assert.False(t, s.Undo())
}

func TestSessionFields(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.RemoveField("missing"), errorz.ErrFieldNotFound)

	title, err := s.AddField(entity.FieldTitle)
	require.NoError(t, err)
	date, err := s.AddField(entity.FieldDate)
	require.NoError(t, err)
	label, err := s.AddField(entity.FieldLabel)
	require.NoError(t, err)
	require.NotNil(t, s.Template())

	_, err = s.AddField("sparkles")
	assert.Error(t, err)

	before := s.Template()
	text := "Opening"
	require.NoError(t, s.UpdateField(title, FieldPatch{Value: &text}))
	assert.Equal(t, "", before.Fields[0].Value(), "earlier copies are not mutated")
	assert.Equal(t, "Opening", s.Template().Fields[0].Value())

	require.NoError(t, s.MoveField(label, 0))
	ids := func() []string {
		var out []string
		for _, f := range s.Template().Fields {
			out = append(out, f.ID)
		}
		return out
	}
	assert.Equal(t, []string{label, title, date}, ids())

	require.NoError(t, s.MoveField(label, 99))
	assert.Equal(t, []string{title, date, label}, ids())

	require.NoError(t, s.RemoveField(date))
	assert.Equal(t, []string{title, label}, ids())
	assert.ErrorIs(t, s.UpdateField(date, FieldPatch{Value: &text}), errorz.ErrFieldNotFound)
}

func TestSessionComposition(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("hello")
	tpl := entity.DefaultTemplate()
	tpl.Title = "Menu"
	s.SetTemplate(&tpl)
	_, err := s.AddField(entity.FieldDate)
	require.NoError(t, err)

	snap := s.Recompute()
	require.NotNil(t, snap.Composition)

	var texts []string
	for _, n := range snap.Composition.Root.Flatten() {
		if n.Kind == layout.KindText {
			texts = append(texts, n.Text)
		}
	}
	assert.Contains(t, texts, "Menu")
	assert.Contains(t, texts, "05.03.2024")

	s.SetTemplate(nil)
	assert.Nil(t, s.Recompute().Composition)
}

func TestSessionStateRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("hello")
	s.SetIdentifier("rec")
	s.SetStyle(entity.StyleConfig{Foreground: "#ff0000"})
	_, err := s.AddField(entity.FieldText)
	require.NoError(t, err)

	restored := RestoreSession(s.State(), SessionOptions{})
	assert.Equal(t, s.State(), restored.State())
	assert.True(t, restored.CanUndo())
	require.True(t, restored.Undo())
	assert.Equal(t, "#112233", restored.Style().Foreground)
}

func TestSessionExport(t *testing.T) {
	saver := &memorySaver{}
	s := NewSession(entity.StyleConfig{}, SessionOptions{
		Exporter: NewExportService(saver, logger.Nop(), ExportOptions{DisableSettle: true}),
	})
	s.SetContent("hello")
	ctx := context.Background()

	require.NoError(t, s.Export(ctx, ExportRequest{Format: FormatPNG, Size: 200, FileName: "code"}, true, ""))
	assert.Contains(t, saver.files, "code.png")

	blob, err := s.GetBlob(ctx, ExportRequest{Format: FormatSVG, Size: 200}, true, "")
	require.NoError(t, err)
	assert.Contains(t, string(blob.Data), "<svg")

	tpl := entity.DefaultTemplate()
	s.SetTemplate(&tpl)
	_, err = s.GetBlob(ctx, ExportRequest{Format: FormatSVG, Size: 200}, false, "")
	assert.ErrorIs(t, err, errorz.ErrVectorUnavailable)

	blob, err = s.GetBlob(ctx, ExportRequest{Format: FormatJPEG, Size: 200}, false, "qr-studio")
	require.NoError(t, err)
	assert.Equal(t, "jpg", blob.Ext)

	bare := NewSession(entity.StyleConfig{}, SessionOptions{})
	assert.ErrorIs(t, bare.Export(ctx, ExportRequest{Format: FormatPNG}, true, ""), errorz.ErrNoExporter)
}
