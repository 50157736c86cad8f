// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"fmt"
	"io"
	"strings"
)

// RenderUdev writes udev environment lines for one namespace: the raw
// vendor-specific string first, then one line per parsed property with the
// key upper-cased. udev rules import these via IMPORT{program}.
func RenderUdev(w io.Writer, vs string, props PropertyMap) {
	fmt.Fprintf(w, "AZURE_DISK_VS=%s\n", vs)
	for _, p := range props.Properties() {
		fmt.Fprintf(w, "AZURE_DISK_%s=%v\n", strings.ToUpper(p.Key), p.Value)
	}
}
