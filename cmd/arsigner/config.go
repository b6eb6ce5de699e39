package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print the configuration",
	Long: "this command prints the configuration in use, loaded from env vars " +
		"and optional config file, with secrets redacted",
	RunE: configPrint,
}

func configPrint(_ *cobra.Command, _ []string) error {
	return printJSON(cfg.Redacted())
}
