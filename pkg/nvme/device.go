// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package nvme

import (
	"path/filepath"
	"regexp"
	"strconv"
)

var namespaceDevicePattern = regexp.MustCompile(`^nvme([0-9]+)n([0-9]+)$`)

// NSIDFromDevicePath determines the namespace id for a namespace device path.
// The device name must match nvme<ctrl>n<nsid> exactly, with no characters
// after the second integer.
//
// Examples:
//   - /dev/nvme0n5 -> 5
//   - /dev/nvme2n12 -> 12
//   - /dev/nvme100n1 -> 1
//
// Returns -1 when the path does not name an NVMe namespace device.
func NSIDFromDevicePath(path string) int64 {
	m := namespaceDevicePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return -1
	}
	nsid, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return -1
	}
	return int64(nsid)
}
