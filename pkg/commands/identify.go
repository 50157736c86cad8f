// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/aznvme/pkg/identify"
	"github.com/cobaltcore-dev/aznvme/pkg/nvme"
)

var (
	identifyFormat       string
	identifySysClassNvme string
	identifyDevRoot      string
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify Azure NVMe disks attached to this host",
	Long:  "Enumerates Microsoft NVMe controllers, queries each namespace for its vendor-specific data and prints one classification per namespace. Results go to stdout, diagnostics to stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := identify.Config{
			SysClassNvme: identifySysClassNvme,
			DevRoot:      identifyDevRoot,
		}

		id := identify.NewIdentifier(cfg, nvme.NewClient(log.Logger), log.Logger)
		disks := id.IdentifyDisks()

		switch identifyFormat {
		case "plain":
			identify.RenderPlain(os.Stdout, disks)
			return nil
		case "json":
			return identify.RenderJSON(os.Stdout, disks)
		default:
			return fmt.Errorf("unknown output format: %s", identifyFormat)
		}
	},
}

func init() {
	defaults := identify.DefaultConfig()

	identifyCmd.Flags().StringVarP(&identifyFormat, "format", "f", "plain", "Output format (plain, json)")
	identifyCmd.Flags().StringVar(&identifySysClassNvme, "sys-class-nvme", defaults.SysClassNvme, "sysfs NVMe class directory to scan")
	identifyCmd.Flags().StringVar(&identifyDevRoot, "dev-root", defaults.DevRoot, "Directory containing namespace device nodes")
}
