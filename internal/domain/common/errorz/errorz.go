package errorz

import "errors"

var (
	ErrExportInProgress  = errors.New("export already in progress")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrVectorUnavailable = errors.New("vector output is only available for the code alone")
	ErrRecordNotFound    = errors.New("record not found")
	ErrRecordExpired     = errors.New("record expired")
	ErrScanLimitReached  = errors.New("scan limit reached")
	ErrInvalidAssetID    = errors.New("invalid asset id")
	ErrFieldNotFound     = errors.New("field not found")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrNoExporter        = errors.New("export is not configured")
	Forbidden            = errors.New("forbidden")
)
