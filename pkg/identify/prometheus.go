// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	diskInfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "azure_nvme_disk_info",
			Help: "Identified Azure NVMe namespaces (one series per namespace)",
		},
		[]string{"device", "model", "type", "lun", "node", "instance"},
	)

	diskCountGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "azure_nvme_disk_count",
			Help: "Number of identified Azure NVMe namespaces",
		},
		[]string{"node", "instance"},
	)
)

// collectDiskMetrics fills the gauges from the identification result.
func collectDiskMetrics(disks []DiskInfo, meta ExportMeta) {
	diskInfoGauge.Reset()
	diskCountGauge.Reset()

	for _, d := range disks {
		diskInfoGauge.WithLabelValues(
			d.Path,
			d.Model,
			propertyLabel(d, "type"),
			propertyLabel(d, "lun"),
			meta.NodeName,
			meta.InstanceID,
		).Set(1)
	}
	diskCountGauge.WithLabelValues(meta.NodeName, meta.InstanceID).Set(float64(len(disks)))
}

func propertyLabel(d DiskInfo, key string) string {
	if value, ok := d.Properties.Get(key); ok {
		return fmt.Sprintf("%v", value)
	}
	return ""
}

// PushToGateway pushes a one-shot inventory snapshot to a Prometheus
// Pushgateway. The tool exits after a single run, so there is no scrape
// endpoint to keep alive.
func PushToGateway(url string, disks []DiskInfo, meta ExportMeta) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(diskInfoGauge, diskCountGauge)

	collectDiskMetrics(disks, meta)

	pusher := push.New(url, "aznvme").Gatherer(registry)
	if meta.NodeName != "" {
		pusher = pusher.Grouping("node", meta.NodeName)
	}
	return pusher.Push()
}
