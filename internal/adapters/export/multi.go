package export

import (
	"context"
	"errors"

	"github.com/Badsnus/qr-studio/internal/domain/service"
)

// Savers hands a file to every saver and joins their errors.
type Savers []service.Saver

func (s Savers) Save(ctx context.Context, fileName string, blob service.Blob) error {
	var errs []error
	for _, saver := range s {
		if err := saver.Save(ctx, fileName, blob); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
