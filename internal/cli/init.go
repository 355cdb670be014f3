package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morozRed/refprune/internal/config"
)

func RunInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else {
		wd, err := resolveWorkingDirectory()
		if err != nil {
			return err
		}
		dir = wd
	}

	path := filepath.Join(dir, config.FileName)
	created, err := config.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, left unchanged\n", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
