package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/payload"
	"github.com/Badsnus/qr-studio/internal/domain/styling"
	"github.com/Badsnus/qr-studio/pkg/card"
	"github.com/Badsnus/qr-studio/pkg/logger/types"

	_ "golang.org/x/image/webp"
)

// DefaultWatermark is drawn when watermarks are enabled without a custom text.
const DefaultWatermark = "qr-studio"

type RecordStorage interface {
	Create(ctx context.Context, record *entity.CodeRecord) (*entity.CodeRecord, error)
	Get(ctx context.Context, id string) (*entity.CodeRecord, error)
	Update(ctx context.Context, record *entity.CodeRecord) (*entity.CodeRecord, error)
	GetByUser(ctx context.Context, userID int64) ([]entity.CodeRecord, error)
}

type PreferencesStorage interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
}

// Asset is an uploaded image. URL is the reference stored in styles and fields.
type Asset struct {
	ID  string
	URL string
}

type AssetStore interface {
	Upload(ctx context.Context, name string, data []byte) (Asset, error)
	Delete(ctx context.Context, id string) error
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

type CardServiceConfig struct {
	Origin        string
	ViewportWidth int
	Export        ExportOptions
}

// CardService turns stored code records into visuals and exports them.
type CardService struct {
	records RecordStorage
	users   PreferencesStorage
	assets  AssetStore
	saver   Saver
	logger  *types.Logger
	cfg     CardServiceConfig
	now     func() time.Time

	exporters *exporterPool[string]
}

func NewCardService(records RecordStorage, users PreferencesStorage, assets AssetStore, saver Saver, logger *types.Logger, cfg CardServiceConfig) *CardService {
	s := &CardService{
		records: records,
		users:   users,
		assets:  assets,
		saver:   saver,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
	s.exporters = newExporterPool[string](func() *ExportService {
		return NewExportService(s.saver, s.logger, s.cfg.Export)
	})
	return s
}

func (s *CardService) Create(ctx context.Context, record entity.CodeRecord) (*entity.CodeRecord, error) {
	record.Styling = styling.Normalize(record.Styling)
	return s.records.Create(ctx, &record)
}

// Get returns the record if it belongs to userID.
func (s *CardService) Get(ctx context.Context, userID int64, id string) (*entity.CodeRecord, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, errorz.Forbidden
	}
	return record, nil
}

func (s *CardService) GetByUser(ctx context.Context, userID int64) ([]entity.CodeRecord, error) {
	return s.records.GetByUser(ctx, userID)
}

// Usable returns the record if it is neither expired nor out of scans.
func (s *CardService) Usable(ctx context.Context, userID int64, id string) (*entity.CodeRecord, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if record.Expired(s.now()) {
		return nil, errorz.ErrRecordExpired
	}
	if record.Exhausted() {
		return nil, errorz.ErrScanLimitReached
	}
	return record, nil
}

// Blob renders the record and returns the encoded file. With codeOnly the
// template is ignored and the code is exported alone.
func (s *CardService) Blob(ctx context.Context, userID int64, id string, format Format, codeOnly bool) (Blob, error) {
	record, err := s.Usable(ctx, userID, id)
	if err != nil {
		return Blob{}, err
	}
	visual, err := s.Visual(ctx, record, codeOnly)
	if err != nil {
		return Blob{}, err
	}
	exporter, release := s.exporters.acquire(record.ID)
	defer release()
	return exporter.GetBlob(ctx, visual, s.request(record, format))
}

// Export renders the record and hands the file to the configured saver.
func (s *CardService) Export(ctx context.Context, userID int64, id string, format Format, codeOnly bool) (string, error) {
	record, err := s.Usable(ctx, userID, id)
	if err != nil {
		return "", err
	}
	visual, err := s.Visual(ctx, record, codeOnly)
	if err != nil {
		return "", err
	}
	req := s.request(record, format)
	exporter, release := s.exporters.acquire(record.ID)
	defer release()
	if err = exporter.Export(ctx, visual, req); err != nil {
		return "", err
	}
	return FileName(req.FileName, format), nil
}

func (s *CardService) request(record *entity.CodeRecord, format Format) ExportRequest {
	return ExportRequest{
		Format:        format,
		Size:          s.cfg.Export.DefaultSize,
		FileName:      "qr-" + record.ID,
		ViewportWidth: s.cfg.ViewportWidth,
	}
}

// Visual assembles the record into a renderable visual. Logo and image
// failures degrade to a visual without them.
func (s *CardService) Visual(ctx context.Context, record *entity.CodeRecord, codeOnly bool) (Visual, error) {
	content := payload.Resolve(record.Content, record.Type, record.ID, payload.NewOriginChain(s.cfg.Origin, ""))
	assembled := styling.Assemble(record.Styling, content)
	if assembled.Overridden() {
		s.logger.Debugf("Record %s: error correction %s raised to %s", record.ID, assembled.Requested, assembled.Level)
	}

	opts := assembled.Options
	if assembled.LogoRef != "" {
		logo, err := s.LoadImage(ctx, assembled.LogoRef)
		if err != nil {
			s.logger.Warnf("Record %s: failed to load logo: %v", record.ID, err)
		} else {
			opts.Logo = logo
		}
	}

	watermark := s.watermark(ctx, record.UserID)
	if codeOnly || record.Template == nil {
		return CodeVisual{Options: opts, Watermark: watermark}, nil
	}

	template := record.Template.Clone()
	return CardVisual{
		Code:      opts,
		Template:  template,
		Images:    s.fieldImages(ctx, template),
		Watermark: watermark,
		Now:       s.now,
	}, nil
}

func (s *CardService) watermark(ctx context.Context, userID int64) string {
	if s.users == nil {
		return ""
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		s.logger.Debugf("No preferences for user %d: %v", userID, err)
		return ""
	}
	prefs := user.Preferences()
	if !prefs.WatermarkEnabled {
		return ""
	}
	if text := strings.TrimSpace(prefs.WatermarkText); text != "" {
		return text
	}
	return DefaultWatermark
}

func (s *CardService) fieldImages(ctx context.Context, t entity.CardTemplate) card.Images {
	images := card.Images{}
	for _, f := range t.Fields {
		logo, ok := f.Content.(entity.LogoField)
		if !ok || logo.Image == "" {
			continue
		}
		if _, loaded := images[logo.Image]; loaded {
			continue
		}
		img, err := s.LoadImage(ctx, logo.Image)
		if err != nil {
			s.logger.Warnf("Field %s: failed to load image: %v", f.ID, err)
			continue
		}
		images[logo.Image] = img
	}
	return images
}

// LoadImage decodes an image reference: either a data URL or an uploaded asset.
func (s *CardService) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURL(ref)
	}
	if s.assets == nil {
		return nil, errorz.ErrInvalidAssetID
	}
	rc, err := s.assets.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	return img, err
}

func decodeDataURL(ref string) (image.Image, error) {
	meta, data, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("unsupported data url")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

// ReplaceLogo uploads a new logo and points the record at it. The previous
// asset is deleted only after the record is saved with the new one.
func (s *CardService) ReplaceLogo(ctx context.Context, userID int64, id, name string, data []byte) (*entity.CodeRecord, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, _, err = image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("logo is not an image: %w", err)
	}

	asset, err := s.assets.Upload(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	previous := record.LogoAssetID
	record.Styling.Logo = asset.URL
	record.LogoAssetID = asset.ID
	record.Styling = styling.Normalize(record.Styling)
	record, err = s.records.Update(ctx, record)
	if err != nil {
		if errDelete := s.assets.Delete(ctx, asset.ID); errDelete != nil {
			s.logger.Warnf("Failed to delete orphaned asset %s: %v", asset.ID, errDelete)
		}
		return nil, err
	}

	if previous != "" && previous != asset.ID {
		if err = s.assets.Delete(ctx, previous); err != nil {
			return record, fmt.Errorf("delete previous logo: %w", err)
		}
	}
	return record, nil
}

// RemoveLogo clears the logo of the record and deletes its asset.
func (s *CardService) RemoveLogo(ctx context.Context, userID int64, id string) (*entity.CodeRecord, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	previous := record.LogoAssetID
	record.Styling.Logo = ""
	record.Styling.LogoOptions = nil
	record.LogoAssetID = ""
	record, err = s.records.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	if previous != "" {
		if err = s.assets.Delete(ctx, previous); err != nil {
			return record, fmt.Errorf("delete logo: %w", err)
		}
	}
	return record, nil
}
