package main

import (
	"fmt"

	"github.com/Adda-Baaj/nievex-client/internal/app"
	"github.com/Adda-Baaj/nievex-client/internal/config"
	"github.com/Adda-Baaj/nievex-client/internal/logger"
	"github.com/spf13/cobra"
)

type cli struct {
	output string
	svc    *app.Service
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nievex",
		Short:         "Upload files and shorten links with the Nievex API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(c.output); err != nil {
				return err
			}
			return c.start(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&c.output, "output", "o", formatJSON, "output format: json or yaml")

	root.AddCommand(
		c.uploadCmd(),
		c.shortenCmd(),
		c.healthCmd(),
		c.historyCmd(),
	)
	return root
}

func (c *cli) start(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.DebugObj("nievex starting", "config", map[string]any{
		"app_env":         cfg.Env,
		"history_type":    cfg.HistoryType,
		"publishers_file": cfg.PublishersFile,
	})

	svc, err := app.NewService(cmd.Context(), cfg, logger.Global{})
	if err != nil {
		logger.ErrorObj("failed to initialize service", "error", err)
		return err
	}
	c.svc = svc
	return nil
}

// stop runs after every command, including failed ones.
func (c *cli) stop() error {
	defer logger.Close()
	if c.svc == nil {
		return nil
	}
	return c.svc.Close()
}

func (c *cli) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to the CDN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := c.svc.Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, payload)
		},
	}
}

func (c *cli) shortenCmd() *cobra.Command {
	var customID string
	cmd := &cobra.Command{
		Use:   "shorten <url>",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := c.svc.Shorten(cmd.Context(), args[0], customID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, payload)
		},
	}
	cmd.Flags().StringVar(&customID, "id", "", "custom short link id")
	return cmd
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := c.svc.Health(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, payload)
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List uploads and short links created from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.svc.History()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, entries)
		},
	}
}
