package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	appconfig "github.com/vulpemventures/arsigner/internal/app-config"
	"github.com/vulpemventures/arsigner/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	cfg        *config.Config

	rootCmd = &cobra.Command{
		Use:   "arsigner",
		Short: "CLI to transfer AR from a custodial vault",
		Long: "This CLI lets you build Arweave transactions owned by a key held " +
			"by a remote signer, get them signed and submit them to a node",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			c, err := config.Load(cleanAndExpandPath(configPath))
			if err != nil {
				return err
			}
			log.SetLevel(log.Level(c.LogLevel))
			cfg = c
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       formatVersion(),
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "",
		"path of an optional config file, ARSIGNER_ env vars take precedence",
	)
	rootCmd.AddCommand(configCmd, ownerCmd, transferCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printErr(err)
		stop()
		os.Exit(1)
	}
}

func newAppConfig(withSigner bool) (*appconfig.AppConfig, error) {
	appCfg := &appconfig.AppConfig{
		Version:    version,
		Commit:     commit,
		Date:       date,
		Config:     cfg,
		WithSigner: withSigner,
	}
	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Debugf("arsigner %s", appCfg.BuildInfo())
	return appCfg, nil
}
