// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package identify enumerates Microsoft NVMe controllers from sysfs,
// queries each namespace for its vendor-specific data and classifies the
// disks behind them (os, data, local).
package identify

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/cobaltcore-dev/aznvme/pkg/nvme"
)

// MicrosoftNVMeVendorID is the PCI vendor id of Microsoft NVMe controllers.
const MicrosoftNVMeVendorID = 0x1414

var controllerNamePattern = regexp.MustCompile(`^nvme([0-9]+)$`)

// Config locates the kernel interfaces the identifier scans. The defaults
// are only overridden by tests and chrooted environments.
type Config struct {
	SysClassNvme string
	DevRoot      string
}

func DefaultConfig() Config {
	return Config{
		SysClassNvme: "/sys/class/nvme",
		DevRoot:      "/dev",
	}
}

// Controller is an eligible Microsoft NVMe controller found in sysfs.
type Controller struct {
	Name    string
	SysPath string
	Model   string
}

// Namespace is a namespace device of a controller. The controller
// association is by path only.
type Namespace struct {
	DevPath           string
	NSID              int64
	ControllerSysPath string
}

// DiskInfo is the identification result for one namespace. VS is nil when
// the Identify command failed outright, "" when it succeeded without vendor
// data; the two cases render differently.
type DiskInfo struct {
	Path           string      `json:"path"`
	Model          string      `json:"model"`
	Properties     PropertyMap `json:"properties"`
	VS             *string     `json:"vs"`
	Classification string      `json:"-"`
}

// NamespaceIdentifier yields the vendor-specific string for a namespace
// device. *nvme.Client implements it.
type NamespaceIdentifier interface {
	NamespaceVS(devicePath string, nsid int64) (string, error)
}

// Identifier ties the sysfs enumeration to the Identify client and the
// property parser.
type Identifier struct {
	cfg    Config
	nvme   NamespaceIdentifier
	parser *Parser
	log    zerolog.Logger
}

func NewIdentifier(cfg Config, client NamespaceIdentifier, logger zerolog.Logger) *Identifier {
	return &Identifier{
		cfg:    cfg,
		nvme:   client,
		parser: NewParser(logger),
		log:    logger,
	}
}

// IdentifyDisks identifies every namespace of every Microsoft NVMe
// controller, in numeric device order. Per-namespace failures leave a
// DiskInfo with a nil VS and never abort the run.
func (id *Identifier) IdentifyDisks() []DiskInfo {
	var disks []DiskInfo
	for _, ctrl := range id.Controllers() {
		for _, ns := range id.Namespaces(ctrl) {
			disks = append(disks, id.identifyNamespace(ctrl, ns))
		}
	}
	return disks
}

func (id *Identifier) identifyNamespace(ctrl Controller, ns Namespace) DiskInfo {
	info := DiskInfo{
		Path:  ns.DevPath,
		Model: ctrl.Model,
	}

	vs, err := id.nvme.NamespaceVS(ns.DevPath, ns.NSID)
	if err != nil {
		id.log.Error().Err(err).Str("device", ns.DevPath).Msg("failed to identify namespace")
		return info
	}

	info.VS = &vs
	info.Classification = classify(ctrl.Model, ns.NSID, vs)
	info.Properties = id.parser.Parse(info.Classification)
	return info
}

// Controllers returns the Microsoft NVMe controllers present in sysfs, in
// numeric name order (nvme2 before nvme10). A missing or unreadable scan
// root is reported once and yields no controllers.
func (id *Identifier) Controllers() []Controller {
	entries, err := os.ReadDir(id.cfg.SysClassNvme)
	if err != nil {
		id.log.Warn().Err(err).Str("path", id.cfg.SysClassNvme).Msg("no NVMe devices found")
		return nil
	}

	var ctrls []Controller
	for _, entry := range entries {
		name := entry.Name()
		if !controllerNamePattern.MatchString(name) {
			continue
		}
		sysPath := filepath.Join(id.cfg.SysClassNvme, name)
		if !id.isMicrosoftController(sysPath) {
			continue
		}
		ctrls = append(ctrls, Controller{
			Name:    name,
			SysPath: sysPath,
			Model:   id.readModel(sysPath),
		})
	}

	sort.Slice(ctrls, func(i, j int) bool {
		return controllerNumber(ctrls[i].Name) < controllerNumber(ctrls[j].Name)
	})

	return ctrls
}

// Namespaces returns the namespace devices of ctrl in numeric order
// (n2 before n10). An unreadable controller directory skips that
// controller only.
func (id *Identifier) Namespaces(ctrl Controller) []Namespace {
	entries, err := os.ReadDir(ctrl.SysPath)
	if err != nil {
		id.log.Error().Err(err).Str("controller", ctrl.Name).Msg("failed to enumerate namespaces")
		return nil
	}

	var namespaces []Namespace
	for _, entry := range entries {
		name := entry.Name()
		nsid := nvme.NSIDFromDevicePath(name)
		if nsid < 0 {
			continue
		}
		namespaces = append(namespaces, Namespace{
			DevPath:           filepath.Join(id.cfg.DevRoot, name),
			NSID:              nsid,
			ControllerSysPath: ctrl.SysPath,
		})
	}

	sort.Slice(namespaces, func(i, j int) bool {
		return namespaces[i].NSID < namespaces[j].NSID
	})

	return namespaces
}

// isMicrosoftController reports whether the controller's PCI vendor id is
// Microsoft's. Controllers without a readable vendor attribute are not
// eligible.
func (id *Identifier) isMicrosoftController(sysPath string) bool {
	vendorPath := filepath.Join(sysPath, "device", "vendor")
	raw, err := os.ReadFile(vendorPath)
	if err != nil {
		id.log.Debug().Err(err).Str("path", vendorPath).Msg("failed to read vendor id")
		return false
	}
	vendor, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"), 16, 32)
	if err != nil {
		id.log.Debug().Err(err).Str("path", vendorPath).Msg("failed to parse vendor id")
		return false
	}
	return vendor == MicrosoftNVMeVendorID
}

// readModel returns the controller model with trailing whitespace trimmed;
// sysfs pads the attribute. A missing model is non-fatal.
func (id *Identifier) readModel(sysPath string) string {
	modelPath := filepath.Join(sysPath, "model")
	raw, err := os.ReadFile(modelPath)
	if err != nil {
		id.log.Debug().Err(err).Str("path", modelPath).Msg("failed to read model")
		return ""
	}
	return strings.TrimRightFunc(string(raw), unicode.IsSpace)
}

func controllerNumber(name string) int64 {
	n, _ := strconv.ParseInt(strings.TrimPrefix(name, "nvme"), 10, 64)
	return n
}
