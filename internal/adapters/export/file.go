package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Badsnus/qr-studio/internal/domain/service"
)

// FileSaver writes exported files into a directory.
type FileSaver struct {
	OutputDir string
}

func NewFileSaver(outputDir string) *FileSaver {
	return &FileSaver{OutputDir: outputDir}
}

func (s *FileSaver) Save(_ context.Context, fileName string, blob service.Blob) error {
	if err := s.ensureOutputDir(); err != nil {
		return err
	}
	path := filepath.Join(s.OutputDir, filepath.Base(fileName))
	if err := os.WriteFile(path, blob.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *FileSaver) ensureOutputDir() error {
	if _, err := os.Stat(s.OutputDir); os.IsNotExist(err) {
		err = os.MkdirAll(s.OutputDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}
	return nil
}
