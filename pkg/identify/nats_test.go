package identify

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToDiskEvent(t *testing.T) {
	vs := "type=data,lun=3"
	p := NewParser(zerolog.Nop())
	disk := DiskInfo{
		Path:           "/dev/nvme0n5",
		Model:          ModelAcceleratorV1,
		Properties:     p.Parse(vs),
		VS:             &vs,
		Classification: vs,
	}
	meta := ExportMeta{NodeName: "node-1", InstanceID: "i-abc"}

	event := convertToDiskEvent(disk, meta)

	_, err := uuid.Parse(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, "node-1", event.NodeName)
	assert.Equal(t, "i-abc", event.InstanceID)
	assert.Equal(t, "/dev/nvme0n5", event.Device)
	assert.Equal(t, ModelAcceleratorV1, event.Model)
	assert.Equal(t, "disk_identify", event.EventType)
	assert.Equal(t, "info", event.Severity)
	assert.Equal(t, map[string]string{
		"type": "data",
		"lun":  "3",
		"vs":   "type=data,lun=3",
	}, event.Details)
}

func TestConvertToDiskEventHardFailure(t *testing.T) {
	disk := DiskInfo{
		Path:  "/dev/nvme5n3",
		Model: "Unknown model",
	}

	event := convertToDiskEvent(disk, ExportMeta{NodeName: "node-1"})

	assert.Equal(t, "warning", event.Severity)
	assert.NotContains(t, event.Details, "vs")
	assert.Empty(t, event.Details)
}

func TestCollectDiskMetrics(t *testing.T) {
	vs := "type=data,lun=3"
	p := NewParser(zerolog.Nop())
	disks := []DiskInfo{
		{Path: "/dev/nvme0n5", Model: ModelAcceleratorV1, Properties: p.Parse(vs), VS: &vs},
		{Path: "/dev/nvme1n1", Model: ModelDirectDiskV2},
	}

	collectDiskMetrics(disks, ExportMeta{NodeName: "node-1", InstanceID: "i-abc"})

	info, err := diskInfoGauge.GetMetricWithLabelValues("/dev/nvme0n5", ModelAcceleratorV1, "data", "3", "node-1", "i-abc")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(info))

	local, err := diskInfoGauge.GetMetricWithLabelValues("/dev/nvme1n1", ModelDirectDiskV2, "", "", "node-1", "i-abc")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(local))

	count, err := diskCountGauge.GetMetricWithLabelValues("node-1", "i-abc")
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(count))
}
