// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/aznvme/pkg/identify"
	"github.com/cobaltcore-dev/aznvme/pkg/nvme"
)

var udevDevname string

var udevCmd = &cobra.Command{
	Use:   "udev",
	Short: "Print udev import lines for one namespace device",
	Long:  "Reads the namespace device from the DEVNAME environment variable (or --devname) and prints AZURE_DISK_* lines for udev rules to import. Any failure exits non-zero so the rule imports nothing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		devname := udevDevname
		if devname == "" {
			devname = getEnv("DEVNAME", "")
		}
		if devname == "" {
			return errors.New("DEVNAME environment variable is not set")
		}

		client := nvme.NewClient(log.Logger)
		vs, err := client.NamespaceVSForDevice(devname)
		if err != nil {
			return err
		}

		parser := identify.NewParser(log.Logger)
		identify.RenderUdev(os.Stdout, vs, parser.Parse(vs))
		return nil
	},
}

func init() {
	udevCmd.Flags().StringVar(&udevDevname, "devname", "", "Namespace device path (defaults to $DEVNAME)")
}
