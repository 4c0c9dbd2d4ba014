package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fairyhunter13/file-parser/internal/config"
)

// BuildReadinessChecks returns the relay credential check and the temp
// directory write check.
func BuildReadinessChecks(cfg config.Config) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	relayCheck := func(_ context.Context) error {
		if !cfg.RelayConfigured() {
			return errors.New("OPENAI_API_KEY not set")
		}
		return nil
	}
	tempDirCheck := func(_ context.Context) error {
		f, err := os.CreateTemp(cfg.TempDir(), "readyz-*")
		if err != nil {
			return fmt.Errorf("temp dir not writable: %w", err)
		}
		_ = f.Close()
		return os.Remove(f.Name())
	}
	return relayCheck, tempDirCheck
}
