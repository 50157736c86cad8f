// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import "fmt"

// Azure NVMe controller models, as read from sysfs after trimming the
// padding.
const (
	ModelAcceleratorV1 = "MSFT NVMe Accelerator v1.0"
	ModelDirectDiskV1  = "Microsoft NVMe Direct Disk"
	ModelDirectDiskV2  = "Microsoft NVMe Direct Disk v2"
)

// classify returns the classification string for a namespace. A non-empty
// vendor-specific string wins verbatim; only namespaces that identified
// successfully without vendor data fall back to the model heuristic.
func classify(model string, nsid int64, vs string) string {
	if vs != "" {
		return vs
	}
	return fallbackClassification(model, nsid)
}

// fallbackClassification synthesizes a classification for Azure controllers
// that expose no vendor-specific data. On the v1 accelerator the OS disk is
// namespace 1 and data disk LUNs start at namespace 2 (lun = nsid - 2).
// Unknown models yield an empty classification.
func fallbackClassification(model string, nsid int64) string {
	switch model {
	case ModelAcceleratorV1:
		if nsid == 1 {
			return "type=os"
		}
		if nsid >= 2 {
			return fmt.Sprintf("type=data,lun=%d", nsid-2)
		}
		return ""
	case ModelDirectDiskV1, ModelDirectDiskV2:
		return "type=local"
	default:
		return ""
	}
}
