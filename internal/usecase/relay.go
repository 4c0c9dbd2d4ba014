package usecase

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	obs "github.com/fairyhunter13/file-parser/internal/adapter/observability"
	"github.com/fairyhunter13/file-parser/internal/domain"
)

// RelayService forwards uploads to a remote file store. The body is staged
// in a temp file that never outlives the call.
type RelayService struct {
	Uploader domain.FileUploader
	// TempDir is where staged files are created; "" means os.TempDir().
	TempDir string
}

// NewRelayService constructs a RelayService.
func NewRelayService(u domain.FileUploader, tempDir string) RelayService {
	return RelayService{Uploader: u, TempDir: tempDir}
}

// Relay stages data on disk with a suffix matching its sniffed format and
// uploads it under the temp file's base name. A remote non-200 is returned
// as a result, not an error; local failures wrap domain.ErrRelayTransport.
func (s RelayService) Relay(ctx domain.Context, data []byte) (domain.UploadResult, error) {
	if s.Uploader == nil {
		return domain.UploadResult{}, fmt.Errorf("%w: uploader is nil", domain.ErrRelayTransport)
	}
	format := domain.DetectFormat(data)
	obs.LoggerFromContext(ctx).Debug("relaying file",
		slog.String("format", format.String()),
		slog.Int("bytes", len(data)))

	var res domain.UploadResult
	err := withTempFile(ctx, s.TempDir, format.Suffix(), data, func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: reopen temp file: %v", domain.ErrRelayTransport, err)
		}
		defer func() { _ = f.Close() }()
		res, err = s.Uploader.UploadFile(ctx, filepath.Base(path), f)
		return err
	})
	if err != nil {
		return domain.UploadResult{}, err
	}
	return res, nil
}

// withTempFile writes data to a fresh temp file, calls fn with its path and
// removes the file afterwards whatever happened. A failed removal is logged
// and counted but never returned.
func withTempFile(ctx domain.Context, dir, suffix string, data []byte, fn func(path string) error) error {
	f, err := os.CreateTemp(dir, "upload-*"+suffix)
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrRelayTransport, err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			obs.LoggerFromContext(ctx).Warn("failed to remove temp file",
				slog.String("path", path),
				slog.Any("error", err))
			obs.TempFileCleanupFailed()
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write temp file: %v", domain.ErrRelayTransport, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", domain.ErrRelayTransport, err)
	}
	return fn(path)
}
