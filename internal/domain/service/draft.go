package service

import (
	"context"
	"errors"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/payload"
	"github.com/Badsnus/qr-studio/internal/domain/styling"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type DraftStorage interface {
	Get(ctx context.Context, userID int64) (SessionState, error)
	Set(ctx context.Context, userID int64, state SessionState) error
	Clear(ctx context.Context, userID int64) error
}

type DraftServiceConfig struct {
	Origin       string
	HistoryLimit int
	Export       ExportOptions
}

// DraftService keeps per-user editing sessions between bot updates.
type DraftService struct {
	drafts DraftStorage
	cards  *CardService
	saver  Saver
	logger *types.Logger
	cfg    DraftServiceConfig
	now    func() time.Time

	exporters *exporterPool[int64]
}

func NewDraftService(drafts DraftStorage, cards *CardService, saver Saver, logger *types.Logger, cfg DraftServiceConfig) *DraftService {
	s := &DraftService{
		drafts: drafts,
		cards:  cards,
		saver:  saver,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	s.exporters = newExporterPool[int64](func() *ExportService {
		return NewExportService(s.saver, s.logger, s.cfg.Export)
	})
	return s
}

// options builds the session options. Sessions opened only for editing get no exporter.
func (s *DraftService) options(exporter *ExportService) SessionOptions {
	opts := SessionOptions{
		Origins:      payload.NewOriginChain(s.cfg.Origin, ""),
		HistoryLimit: s.cfg.HistoryLimit,
		Exporter:     exporter,
		Now:          s.now,
	}
	if s.cards != nil {
		opts.Images = s.cards
	}
	return opts
}

// Open returns the saved draft of the user or errorz.ErrDraftNotFound.
func (s *DraftService) Open(ctx context.Context, userID int64) (*Session, error) {
	state, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RestoreSession(state, s.options(nil)), nil
}

// Start replaces the draft of the user with a new one for content.
func (s *DraftService) Start(ctx context.Context, userID int64, content string, codeType entity.CodeType) (*Session, error) {
	session := NewSession(entity.StyleConfig{}, s.options(nil))
	session.SetContent(content)
	if codeType != "" {
		session.SetType(codeType)
	}
	return session, s.Save(ctx, userID, session)
}

func (s *DraftService) Save(ctx context.Context, userID int64, session *Session) error {
	return s.drafts.Set(ctx, userID, session.State())
}

// Edit opens the draft, applies edit and saves the draft when edit succeeds.
func (s *DraftService) Edit(ctx context.Context, userID int64, edit func(*Session) error) (*Session, error) {
	session, err := s.Open(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = edit(session); err != nil {
		return session, err
	}
	return session, s.Save(ctx, userID, session)
}

// Preview encodes the draft. Card drafts are exported with their template.
func (s *DraftService) Preview(ctx context.Context, userID int64, format Format, codeOnly bool) (Blob, error) {
	state, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return Blob{}, err
	}
	exporter, release := s.exporters.acquire(userID)
	defer release()

	session := RestoreSession(state, s.options(exporter))
	snap := session.Recompute()
	return session.GetBlob(ctx, ExportRequest{
		Format:   format,
		Size:     snap.Style.Size,
		FileName: "draft",
	}, codeOnly, "")
}

// Commit stores the draft as a code record of the user and binds the draft to it.
func (s *DraftService) Commit(ctx context.Context, userID int64) (*entity.CodeRecord, error) {
	if s.cards == nil {
		return nil, errors.New("records are not configured")
	}
	session, err := s.Open(ctx, userID)
	if err != nil {
		return nil, err
	}
	state := session.State()
	if state.RecordID != "" {
		record, errGet := s.cards.Get(ctx, userID, state.RecordID)
		if errGet == nil {
			record.Content = state.Content
			record.Type = state.Type
			record.Styling = styling.Normalize(state.Style)
			record.Template = state.Template
			return s.cards.records.Update(ctx, record)
		}
		if !errors.Is(errGet, errorz.ErrRecordNotFound) {
			return nil, errGet
		}
	}

	record, err := s.cards.Create(ctx, entity.CodeRecord{
		UserID:   userID,
		Content:  state.Content,
		Type:     state.Type,
		Styling:  state.Style,
		Template: state.Template,
	})
	if err != nil {
		return nil, err
	}
	session.SetIdentifier(record.ID)
	return record, s.Save(ctx, userID, session)
}

func (s *DraftService) Discard(ctx context.Context, userID int64) error {
	return s.drafts.Clear(ctx, userID)
}
