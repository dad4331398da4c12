package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theDavidOlasupo/seglog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a seglog configuration file without parsing anything.

Checks:
  - YAML syntax
  - Parser settings (chunk size, progress interval, encoding)
  - Limits
  - Webhook endpoints`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Chunk size:        %d bytes\n", cfg.Parser.ChunkSize)
	fmt.Printf("  Progress interval: %d bytes\n", cfg.Parser.ProgressInterval)
	fmt.Printf("  Encoding:          %s\n", cfg.Parser.Encoding)
	if cfg.Parser.StrictUTF8 {
		fmt.Printf("  Strict UTF-8:      enabled\n")
	}
	if cfg.Limits.MaxFileSize > 0 {
		fmt.Printf("  Max file size:     %d bytes\n", cfg.Limits.MaxFileSize)
	}

	if len(cfg.Webhooks) > 0 {
		fmt.Printf("\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Printf("  %d. [%s] %s\n", i+1, wh.Trigger, name)
		}
	}

	return nil
}
