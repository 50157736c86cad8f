// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// ExportMeta carries the node identity stamped on exported events and
// metrics.
type ExportMeta struct {
	NodeName   string
	InstanceID string
}

// DiskEvent is the NATS payload describing one identified namespace.
type DiskEvent struct {
	EventID    string            `json:"event_id"`    // Unique id of this event
	NodeName   string            `json:"node_name"`   // Name of the node the disk is attached to
	InstanceID string            `json:"instance_id"` // ID of the VM instance
	Device     string            `json:"device"`      // Namespace device path (e.g., /dev/nvme0n1)
	Model      string            `json:"model"`       // Controller model
	EventType  string            `json:"event_type"`  // Always 'disk_identify'
	Severity   string            `json:"severity"`    // 'info', or 'warning' when identification failed
	Message    string            `json:"message"`     // Description of the event
	Details    map[string]string `json:"details"`     // Parsed properties plus the raw vs
}

// convertToDiskEvent converts a DiskInfo to a DiskEvent
func convertToDiskEvent(d DiskInfo, meta ExportMeta) DiskEvent {
	details := make(map[string]string, d.Properties.Len()+1)
	for _, p := range d.Properties.Properties() {
		details[p.Key] = fmt.Sprintf("%v", p.Value)
	}

	event := DiskEvent{
		EventID:    uuid.NewString(),
		NodeName:   meta.NodeName,
		InstanceID: meta.InstanceID,
		Device:     d.Path,
		Model:      d.Model,
		EventType:  "disk_identify",
		Severity:   "info",
		Message:    "identified azure nvme namespace",
		Details:    details,
	}

	if d.VS == nil {
		event.Severity = "warning"
		event.Message = "failed to identify azure nvme namespace"
	} else {
		details["vs"] = *d.VS
	}

	return event
}

// PublishToNATS publishes one event per identified namespace.
func PublishToNATS(nc *nats.Conn, subject string, disks []DiskInfo, meta ExportMeta) error {
	for _, d := range disks {
		event := convertToDiskEvent(d, meta)
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("error serializing disk event: %w", err)
		}
		if err := nc.Publish(subject, data); err != nil {
			return fmt.Errorf("error publishing disk event: %w", err)
		}
	}
	return nil
}
