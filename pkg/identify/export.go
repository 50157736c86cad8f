// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ExportConfig selects the sinks the identification result is published to.
type ExportConfig struct {
	NatsURL        string
	NatsSubject    string
	UseNats        bool
	PushgatewayURL string
	NodeName       string
	InstanceID     string
}

// Export publishes the identification result to the configured sinks and
// returns on the first sink error. It is a single shot; the caller exits
// afterwards.
func Export(disks []DiskInfo, cfg ExportConfig, logger zerolog.Logger) error {
	meta := ExportMeta{NodeName: cfg.NodeName, InstanceID: cfg.InstanceID}

	if cfg.UseNats {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return fmt.Errorf("error connecting to nats: %w", err)
		}
		defer nc.Close()

		if err := PublishToNATS(nc, cfg.NatsSubject, disks, meta); err != nil {
			return err
		}
		logger.Info().Int("disks", len(disks)).Str("subject", cfg.NatsSubject).Msg("published disk events")
	}

	if cfg.PushgatewayURL != "" {
		if err := PushToGateway(cfg.PushgatewayURL, disks, meta); err != nil {
			return fmt.Errorf("error pushing to pushgateway: %w", err)
		}
		logger.Info().Int("disks", len(disks)).Str("pushgateway", cfg.PushgatewayURL).Msg("pushed disk metrics")
	}

	return nil
}
