// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	v string
)

var rootCmd = &cobra.Command{
	Use:     "aznvme",
	Short:   "CLI for Azure NVMe disk identification",
	Long:    "A CLI tool to identify Azure NVMe disks and expose their role (os, data, local) to scripts and udev rules.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setUpLogs(v); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&v, "verbosity", "v", zerolog.WarnLevel.String(), "Log level (debug, info, warn, error, fatal, panic")

	// Add subcommands
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(udevCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'\n", err)
		os.Exit(1)
	}
}

// setUpLogs sets the log output and the log level. Diagnostics go to stderr;
// stdout is reserved for identification results.
func setUpLogs(level string) error {
	zerolog.SetGlobalLevel(zerolog.WarnLevel) // Default level
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger() // Default to JSON output
	// log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
