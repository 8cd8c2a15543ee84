package service

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/history"
	"github.com/Badsnus/qr-studio/internal/domain/layout"
	"github.com/Badsnus/qr-studio/internal/domain/payload"
	"github.com/Badsnus/qr-studio/internal/domain/styling"
	"github.com/Badsnus/qr-studio/pkg/card"
	"github.com/google/uuid"
)

// ImageLoader resolves logo and image field references.
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) (image.Image, error)
}

type SessionOptions struct {
	Origins      payload.OriginResolver
	HistoryLimit int
	Exporter     *ExportService
	Images       ImageLoader
	Now          func() time.Time
}

// SessionState is the serializable part of a session.
type SessionState struct {
	Content  string               `json:"content"`
	Type     entity.CodeType      `json:"type"`
	RecordID string               `json:"recordId,omitempty"`
	Size     int                  `json:"size,omitempty"`
	Style    entity.StyleConfig   `json:"style"`
	Template *entity.CardTemplate `json:"template,omitempty"`
	History  []string             `json:"history,omitempty"`
}

// Snapshot is the result of one recomputation.
type Snapshot struct {
	Style     entity.StyleConfig
	Assembled styling.Assembled
	Payload   string
	// Template and Composition are nil when the session has no card template.
	Template    *entity.CardTemplate
	Composition *layout.Composition
}

// Session holds one editing session. Every setter marks it dirty and
// Recompute derives a fresh Snapshot from the current inputs; a snapshot
// is never patched in place.
type Session struct {
	mu sync.Mutex

	content  string
	codeType entity.CodeType
	recordID string
	size     int
	style    entity.StyleConfig
	template *entity.CardTemplate

	history  *history.Stack
	origins  payload.OriginResolver
	exporter *ExportService
	images   ImageLoader
	now      func() time.Time

	dirty    bool
	snapshot Snapshot
}

func NewSession(style entity.StyleConfig, opts SessionOptions) *Session {
	if opts.Origins == nil {
		opts.Origins = payload.NewOriginChain("", "")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		codeType: entity.TypeURL,
		style:    style.Clone(),
		history:  history.New(opts.HistoryLimit),
		origins:  opts.Origins,
		exporter: opts.Exporter,
		images:   opts.Images,
		now:      opts.Now,
		dirty:    true,
	}
	s.history.Push(styling.Normalize(s.style))
	return s
}

// RestoreSession rebuilds a session from a saved state, history included.
func RestoreSession(state SessionState, opts SessionOptions) *Session {
	s := NewSession(state.Style, opts)
	s.content = state.Content
	if state.Type != "" {
		s.codeType = state.Type
	}
	s.recordID = state.RecordID
	s.size = state.Size
	if state.Template != nil {
		t := state.Template.Clone()
		s.template = &t
	}
	if len(state.History) > 0 {
		s.history.Restore(state.History)
	}
	return s
}

// State returns the serializable state of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := SessionState{
		Content:  s.content,
		Type:     s.codeType,
		RecordID: s.recordID,
		Size:     s.size,
		Style:    s.style.Clone(),
		History:  s.history.Snapshot(),
	}
	if s.template != nil {
		t := s.template.Clone()
		state.Template = &t
	}
	return state
}

func (s *Session) touch(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply()
	s.dirty = true
}

func (s *Session) SetContent(content string) {
	s.touch(func() { s.content = content })
}

func (s *Session) SetType(t entity.CodeType) {
	s.touch(func() { s.codeType = t })
}

// SetIdentifier sets the persisted record id; an empty id means an unsaved draft.
func (s *Session) SetIdentifier(id string) {
	s.touch(func() { s.recordID = id })
}

// SetSize overrides the style size for rendering; zero keeps the style size.
func (s *Session) SetSize(size int) {
	s.touch(func() { s.size = size })
}

// SetStyle replaces the whole style and records it in the undo history.
func (s *Session) SetStyle(style entity.StyleConfig) {
	s.touch(func() {
		s.style = style.Clone()
		s.history.Push(styling.Normalize(s.style))
	})
}

// SetTemplate replaces the card template. Nil removes the card.
func (s *Session) SetTemplate(t *entity.CardTemplate) {
	s.touch(func() {
		if t == nil {
			s.template = nil
			return
		}
		c := t.Clone()
		s.template = &c
	})
}

func (s *Session) Style() entity.StyleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style.Clone()
}

func (s *Session) Template() *entity.CardTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return nil
	}
	t := s.template.Clone()
	return &t
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Undo restores the previous style. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.history.Undo()
	if prev == nil {
		return false
	}
	s.style = *prev
	s.dirty = true
	return true
}

func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// Recompute returns the snapshot for the current inputs, recomputing it only when dirty.
func (s *Session) Recompute() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return s.snapshot
	}

	style := s.style.Clone()
	if s.size > 0 {
		style.Size = s.size
	}
	style = styling.Normalize(style)
	content := payload.Resolve(s.content, s.codeType, s.recordID, s.origins)

	snap := Snapshot{
		Style:     style,
		Assembled: styling.Assemble(style, content),
		Payload:   content,
	}
	if s.template != nil {
		t := s.template.Clone()
		side := float64(style.Size)
		comp := layout.Layout(t, layout.CodeBlock{Width: side, Height: side}, layout.Options{Now: s.now})
		snap.Template = &t
		snap.Composition = &comp
	}

	s.snapshot = snap
	s.dirty = false
	return snap
}

// FieldPatch changes a field. Nil members are left unchanged.
type FieldPatch struct {
	Value *string
	Style *entity.FieldStyle
}

// UpdateField replaces the field list with one where the field id is patched.
func (s *Session) UpdateField(id string, patch FieldPatch) error {
	return s.editFields(func(fields []entity.CustomField) ([]entity.CustomField, error) {
		i := fieldIndex(fields, id)
		if i < 0 {
			return nil, errorz.ErrFieldNotFound
		}
		f := fields[i]
		if patch.Value != nil {
			content, err := entity.NewFieldContent(f.Kind(), *patch.Value)
			if err != nil {
				return nil, err
			}
			f.Content = content
		}
		if patch.Style != nil {
			f.Style = *patch.Style
		}
		fields[i] = f
		return fields, nil
	})
}

// AddField appends an empty field of kind and returns its id. A session
// without a template starts from the default one.
func (s *Session) AddField(kind entity.FieldKind) (string, error) {
	content, err := entity.NewFieldContent(kind, "")
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	if s.template == nil {
		t := entity.DefaultTemplate()
		s.template = &t
	}
	s.mu.Unlock()

	err = s.editFields(func(fields []entity.CustomField) ([]entity.CustomField, error) {
		return append(fields, entity.CustomField{ID: id, Content: content}), nil
	})
	return id, err
}

func (s *Session) RemoveField(id string) error {
	return s.editFields(func(fields []entity.CustomField) ([]entity.CustomField, error) {
		i := fieldIndex(fields, id)
		if i < 0 {
			return nil, errorz.ErrFieldNotFound
		}
		return append(fields[:i], fields[i+1:]...), nil
	})
}

// MoveField moves the field to index, clamped to the list bounds.
func (s *Session) MoveField(id string, index int) error {
	return s.editFields(func(fields []entity.CustomField) ([]entity.CustomField, error) {
		i := fieldIndex(fields, id)
		if i < 0 {
			return nil, errorz.ErrFieldNotFound
		}
		f := fields[i]
		fields = append(fields[:i], fields[i+1:]...)
		if index < 0 {
			index = 0
		}
		if index > len(fields) {
			index = len(fields)
		}
		fields = append(fields[:index], append([]entity.CustomField{f}, fields[index:]...)...)
		return fields, nil
	})
}

// editFields runs edit on a copy of the field list and swaps the whole list in on success.
func (s *Session) editFields(edit func([]entity.CustomField) ([]entity.CustomField, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return errorz.ErrFieldNotFound
	}
	fields, err := edit(append([]entity.CustomField(nil), s.template.Fields...))
	if err != nil {
		return err
	}
	t := s.template.Clone()
	t.Fields = fields
	s.template = &t
	s.dirty = true
	return nil
}

func fieldIndex(fields []entity.CustomField, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Visual builds the visual of the latest snapshot.
func (s *Session) Visual(ctx context.Context, codeOnly bool, watermark string) Visual {
	snap := s.Recompute()
	opts := snap.Assembled.Options
	if snap.Assembled.LogoRef != "" && s.images != nil {
		if logo, err := s.images.LoadImage(ctx, snap.Assembled.LogoRef); err == nil {
			opts.Logo = logo
		}
	}
	if codeOnly || snap.Template == nil {
		return CodeVisual{Options: opts, Watermark: watermark}
	}

	images := card.Images{}
	if s.images != nil {
		for _, f := range snap.Template.Fields {
			if logo, ok := f.Content.(entity.LogoField); ok && logo.Image != "" {
				if img, err := s.images.LoadImage(ctx, logo.Image); err == nil {
					images[logo.Image] = img
				}
			}
		}
	}
	return CardVisual{
		Code:      opts,
		Template:  *snap.Template,
		Images:    images,
		Watermark: watermark,
		Now:       s.now,
	}
}

// Export saves the current visual through the session exporter.
func (s *Session) Export(ctx context.Context, req ExportRequest, codeOnly bool, watermark string) error {
	if s.exporter == nil {
		return errorz.ErrNoExporter
	}
	return s.exporter.Export(ctx, s.Visual(ctx, codeOnly, watermark), req)
}

// GetBlob returns the current visual encoded as req.Format.
func (s *Session) GetBlob(ctx context.Context, req ExportRequest, codeOnly bool, watermark string) (Blob, error) {
	if s.exporter == nil {
		return Blob{}, errorz.ErrNoExporter
	}
	return s.exporter.GetBlob(ctx, s.Visual(ctx, codeOnly, watermark), req)
}
