package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	edura "github.com/edura-app/edura-go"
	"github.com/edura-app/edura-go/adapters/file"
	"github.com/edura-app/edura-go/config"
)

var (
	flagBaseURL     string
	flagVerbose     bool
	flagSessionFile string

	cfg    *config.Config
	client *edura.Client
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "edura",
	Short:         "Browse, search, and manage documents on the Edura platform",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagBaseURL != "" {
			cfg.BaseURL = flagBaseURL
		}
		if flagSessionFile != "" {
			cfg.SessionFile = flagSessionFile
		}

		logger = zap.NewNop()
		if flagVerbose || cfg.Verbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
		}

		sessionPath, err := cfg.SessionPath()
		if err != nil {
			return err
		}
		session, err := file.New(sessionPath, cfg.SessionSecret)
		if err != nil {
			return err
		}

		client, err = edura.New(edura.Config{
			BaseURL:    cfg.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
			Session:    session,
			Logger:     logger,
			UserAgent:  "edura-cli",
		})
		if err != nil {
			return fmt.Errorf("failed to build client: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override the API base URL")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagSessionFile, "session-file", "", "override the session file location")
}
