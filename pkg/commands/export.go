// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/host"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/aznvme/pkg/config"
	"github.com/cobaltcore-dev/aznvme/pkg/identify"
	"github.com/cobaltcore-dev/aznvme/pkg/nvme"
)

const defaultNatsSubject = "azure.disk.identify"

var (
	exportNatsURL        string
	exportNatsSubject    string
	exportPushgatewayURL string
	exportNodeName       string
	exportInstanceID     string
	exportConfigFile     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Publish the identification result to NATS and/or a Prometheus Pushgateway",
	Long:  "Identifies all Azure NVMe disks once and publishes one event per namespace to NATS and/or an inventory snapshot to a Prometheus Pushgateway, then exits. Environment variables override flags; a config file fills settings still empty after that.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := identify.ExportConfig{
			NatsURL:        exportNatsURL,
			NatsSubject:    exportNatsSubject,
			PushgatewayURL: exportPushgatewayURL,
			NodeName:       exportNodeName,
			InstanceID:     exportInstanceID,
		}

		cfg = mergeExportConfigWithEnv(cfg)

		if exportConfigFile != "" {
			cfg = mergeExportConfigWithFile(cfg, exportConfigFile)
		}

		if cfg.NatsSubject == "" {
			cfg.NatsSubject = defaultNatsSubject
		}

		if cfg.NodeName == "" {
			if info, err := host.Info(); err == nil {
				cfg.NodeName = info.Hostname
			} else {
				log.Warn().Err(err).Msg("failed to determine node name")
			}
		}

		cfg.UseNats = cfg.NatsURL != ""

		event := log.Info()
		event.Bool("use_nats", cfg.UseNats)
		if cfg.UseNats {
			event.Str("nats_url", cfg.NatsURL)
			event.Str("nats_subject", cfg.NatsSubject)
		}
		if cfg.PushgatewayURL != "" {
			event.Str("pushgateway_url", cfg.PushgatewayURL)
		}
		event.Str("node_name", cfg.NodeName).
			Str("instance_id", cfg.InstanceID)

		event.Msg("configuration_loaded")

		validateExportConfig(cfg)

		id := identify.NewIdentifier(identify.DefaultConfig(), nvme.NewClient(log.Logger), log.Logger)
		disks := id.IdentifyDisks()

		if err := identify.Export(disks, cfg, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("export failed")
		}
	},
}

// mergeExportConfigWithEnv lets environment variables override unset or
// flag-provided settings, same precedence as the other commands.
func mergeExportConfigWithEnv(cfg identify.ExportConfig) identify.ExportConfig {
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.NatsSubject = getEnv("NATS_SUBJECT", cfg.NatsSubject)
	cfg.PushgatewayURL = getEnv("PUSHGATEWAY_URL", cfg.PushgatewayURL)
	cfg.NodeName = getEnv("NODE_NAME", cfg.NodeName)
	cfg.InstanceID = getEnv("INSTANCE_ID", cfg.InstanceID)
	return cfg
}

// mergeExportConfigWithFile fills settings that are still empty from the
// YAML config file.
func mergeExportConfigWithFile(cfg identify.ExportConfig, path string) identify.ExportConfig {
	fileConfig, err := config.LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Str("config", path).Msg("failed to load config file")
	}

	if cfg.NatsURL == "" {
		cfg.NatsURL = fileConfig.Global.NatsURL
	}
	if cfg.NatsSubject == "" {
		cfg.NatsSubject = fileConfig.Global.NatsSubject
	}
	if cfg.PushgatewayURL == "" {
		cfg.PushgatewayURL = fileConfig.Global.PushgatewayURL
	}
	if cfg.NodeName == "" {
		cfg.NodeName = fileConfig.Global.NodeName
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = fileConfig.Global.InstanceID
	}

	return cfg
}

func init() {
	exportCmd.Flags().StringVar(&exportNatsURL, "nats-url", "", "NATS server URL")
	exportCmd.Flags().StringVar(&exportNatsSubject, "nats-subject", "", "NATS subject to publish events (default "+defaultNatsSubject+")")
	exportCmd.Flags().StringVar(&exportPushgatewayURL, "pushgateway-url", "", "Prometheus Pushgateway URL")
	exportCmd.Flags().StringVar(&exportNodeName, "node-name", "", "Node name stamped on events (defaults to the hostname)")
	exportCmd.Flags().StringVar(&exportInstanceID, "instance-id", "", "Instance ID stamped on events")
	exportCmd.Flags().StringVar(&exportConfigFile, "config", "", "Path to a YAML config file with a global section")
}

func validateExportConfig(config identify.ExportConfig) {
	missingParams := false

	if !config.UseNats && config.PushgatewayURL == "" {
		fmt.Println("Warning: at least one of --nats-url/NATS_URL or --pushgateway-url/PUSHGATEWAY_URL must be set")
		missingParams = true
	}

	if missingParams {
		fmt.Println("One or more required parameters are missing. Please provide them through flags or environment variables.")
		os.Exit(1)
	}
}
