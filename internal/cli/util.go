package cli

import (
	"fmt"
	"os"

	"github.com/morozRed/refprune/internal/config"
	"github.com/morozRed/refprune/internal/layout"
)

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func resolveLayout(cfg *config.Config) (layout.Layout, error) {
	l, err := layout.Resolve(cfg.Root, cfg.ContentDir, cfg.MarkerFile)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to resolve mod root: %w", err)
	}
	return l, nil
}
