// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cobaltcore-dev/aznvme/pkg/identify"
)

func TestGetEnv(t *testing.T) {
	key := "TEST_KEY"
	fallback := "default_value"

	// Test when the environment variable is not set
	value := getEnv(key, fallback)
	assert.Equal(t, fallback, value)

	// Test when the environment variable is set
	expectedValue := "expected_value"
	os.Setenv(key, expectedValue)
	value = getEnv(key, fallback)
	assert.Equal(t, expectedValue, value)

	// Clean up
	os.Unsetenv(key)
}

func TestSetUpLogs(t *testing.T) {
	assert.NoError(t, setUpLogs("debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.NoError(t, setUpLogs("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, setUpLogs("not-a-level"))
}

func TestMergeExportConfigWithEnv(t *testing.T) {
	cfg := identify.ExportConfig{
		NatsURL:  "nats://from-flag:4222",
		NodeName: "flag-node",
	}

	os.Setenv("NATS_URL", "nats://from-env:4222")
	os.Setenv("INSTANCE_ID", "i-12345")
	defer os.Unsetenv("NATS_URL")
	defer os.Unsetenv("INSTANCE_ID")

	merged := mergeExportConfigWithEnv(cfg)

	assert.Equal(t, "nats://from-env:4222", merged.NatsURL)
	assert.Equal(t, "i-12345", merged.InstanceID)
	assert.Equal(t, "flag-node", merged.NodeName)
}

func TestUdevCmdMissingDevname(t *testing.T) {
	os.Unsetenv("DEVNAME")
	udevDevname = ""

	err := udevCmd.RunE(udevCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DEVNAME")
}

func TestIdentifyCmdUnknownFormat(t *testing.T) {
	defaults := identify.DefaultConfig()
	identifySysClassNvme = t.TempDir()
	identifyFormat = "xml"
	defer func() {
		identifySysClassNvme = defaults.SysClassNvme
		identifyFormat = "plain"
	}()

	err := identifyCmd.RunE(identifyCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
