// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/cobaltcore-dev/aznvme/pkg/commands"
)

func main() {
	commands.Execute()
}
