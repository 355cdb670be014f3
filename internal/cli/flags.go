package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morozRed/refprune/internal/config"
	"github.com/morozRed/refprune/internal/ident"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// addLayoutFlags registers the flags shared by every command that resolves a
// mod root.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("content-dir", "", "Content folder below the mod root (default: db)")
	cmd.Flags().String("marker-file", "", "File that marks a mod root (default: package.json)")
	cmd.Flags().StringSlice("attachments", nil, "Attachment category files under Items (default: built-in list)")
	cmd.Flags().StringSliceP("remove", "r", nil, "Weapon files under Items being removed (.json optional)")
	cmd.Flags().StringSlice("exclude", nil, "Extra glob patterns never treated as references")
	cmd.Flags().Bool("strict", false, "Only count an id as referenced when it is a complete JSON string")
}

// loadConfig merges refprune.yaml, REFPRUNE_* variables, and flags. A
// positional argument overrides the configured root.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configFile, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	workDir, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Dir:        workDir,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		cfg.Root = args[0]
	}
	return cfg, nil
}

func policyFor(cfg *config.Config) ident.Policy {
	if cfg.Strict {
		return ident.PolicyExact
	}
	return ident.PolicySubstring
}
