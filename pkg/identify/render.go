// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"encoding/json"
	"fmt"
	"io"
)

// RenderPlain writes one "<path>: <classification>" line per identified
// namespace. Namespaces whose Identify command failed have nothing to
// report and are skipped; their diagnostics are already on stderr.
func RenderPlain(w io.Writer, disks []DiskInfo) {
	for _, d := range disks {
		if d.VS == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", d.Path, d.Classification)
	}
}

// RenderJSON writes the identification result as a pretty-printed JSON
// array with one object per namespace. Namespaces whose Identify command
// failed are included with a null vs and empty properties.
func RenderJSON(w io.Writer, disks []DiskInfo) error {
	if disks == nil {
		disks = []DiskInfo{}
	}
	out, err := json.MarshalIndent(disks, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
