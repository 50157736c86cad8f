// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package nvme issues NVMe Identify Namespace admin commands to namespace
// device nodes and extracts the vendor-specific data Azure encodes there.
package nvme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const (
	// Identify Namespace returns a 4096-byte structure whose trailing 3712
	// bytes are the vendor-specific region (offset 384 per the NVMe base
	// specification).
	identifySize = 4096
	vsOffset     = 384

	// VSSize is the size of the vendor-specific region.
	VSSize = identifySize - vsOffset

	opcodeIdentifyNamespace = 0x06
)

var (
	ErrOpenDevice      = errors.New("failed to open device")
	ErrAllocBuffer     = errors.New("failed to allocate identify buffer")
	ErrAdminCommand    = errors.New("admin command failed")
	ErrParseDevicePath = errors.New("failed to parse namespace id from device path")
)

// AdminCmd mirrors struct nvme_admin_cmd from linux/nvme_ioctl.h (72 bytes,
// no padding).
type AdminCmd struct {
	Opcode      uint8
	Flags       uint8
	Rsvd1       uint16
	NSID        uint32
	Cdw2        uint32
	Cdw3        uint32
	Metadata    uint64
	Addr        uint64
	MetadataLen uint32
	DataLen     uint32
	Cdw10       uint32
	Cdw11       uint32
	Cdw12       uint32
	Cdw13       uint32
	Cdw14       uint32
	Cdw15       uint32
	TimeoutMS   uint32
	Result      uint32
}

// NVME_IOCTL_ADMIN_CMD = _IOWR('N', 0x41, struct nvme_admin_cmd)
var nvmeIoctlAdminCmd = iowr('N', 0x41, unsafe.Sizeof(AdminCmd{}))

func iowr(typ, nr, size uintptr) uintptr {
	const (
		nrShift   = 0
		typeShift = 8
		sizeShift = 16
		dirShift  = 30

		dirWrite = 1
		dirRead  = 2
	)
	return (dirRead|dirWrite)<<dirShift | size<<sizeShift | typ<<typeShift | nr<<nrShift
}

// Transport issues an NVMe admin passthrough command against an open device.
// data is the payload buffer the device writes into; implementations must
// point cmd.Addr at it before submission.
type Transport interface {
	AdminCommand(f *os.File, cmd *AdminCmd, data []byte) error
}

// ioctlTransport submits admin commands through the NVME_IOCTL_ADMIN_CMD
// ioctl. The kernel returns the NVMe status word as the ioctl result; any
// non-zero status is a failure, same as an errno.
type ioctlTransport struct{}

func (ioctlTransport) AdminCommand(f *os.File, cmd *AdminCmd, data []byte) error {
	if len(data) > 0 {
		cmd.Addr = uint64(uintptr(unsafe.Pointer(&data[0])))
	}
	status, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), nvmeIoctlAdminCmd, uintptr(unsafe.Pointer(cmd)))
	runtime.KeepAlive(data)
	if errno != 0 {
		return errno
	}
	if status != 0 {
		return fmt.Errorf("nvme status 0x%x", status)
	}
	return nil
}

// Allocator returns a zeroed buffer of size bytes whose first byte is aligned
// to align. Injectable so tests can exercise allocation failure.
type Allocator func(size, align int) ([]byte, error)

func alignedAlloc(size, align int) ([]byte, error) {
	if align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("alignment %d is not a power of two", align)
	}
	raw := make([]byte, size+align)
	off := int(uintptr(unsafe.Pointer(&raw[0])) & uintptr(align-1))
	if off != 0 {
		off = align - off
	}
	return raw[off : off+size : off+size], nil
}

// Client executes Identify Namespace commands. The zero value is not usable;
// construct with NewClient.
type Client struct {
	transport Transport
	alloc     Allocator
	pageSize  int
	log       zerolog.Logger
}

func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		transport: ioctlTransport{},
		alloc:     alignedAlloc,
		pageSize:  os.Getpagesize(),
		log:       logger,
	}
}

// IdentifyNamespace executes the Identify Namespace admin command for nsid
// against the device and returns the raw 4096-byte structure. The device
// handle is closed on every path.
func (c *Client) IdentifyNamespace(devicePath string, nsid int64) ([]byte, error) {
	c.log.Debug().Str("device", devicePath).Int64("nsid", nsid).Msg("identifying namespace")

	f, err := os.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenDevice, devicePath, err)
	}
	defer f.Close()

	buf, err := c.alloc(identifySize, c.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrAllocBuffer, devicePath, err)
	}

	cmd := AdminCmd{
		Opcode:  opcodeIdentifyNamespace,
		NSID:    uint32(nsid),
		DataLen: uint32(len(buf)),
	}
	if err := c.transport.AdminCommand(f, &cmd, buf); err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrAdminCommand, devicePath, err)
	}

	return buf, nil
}

// NamespaceVS returns the vendor-specific region of the Identify Namespace
// structure interpreted as a null-terminated string. For Azure devices it
// carries key=value pairs; anything beyond the terminating null byte is
// undefined and ignored.
func (c *Client) NamespaceVS(devicePath string, nsid int64) (string, error) {
	id, err := c.IdentifyNamespace(devicePath, nsid)
	if err != nil {
		return "", err
	}
	return stringFromNullTerminated(id[vsOffset:]), nil
}

// NamespaceVSForDevice derives the namespace id from the device path and
// queries the vendor-specific data.
func (c *Client) NamespaceVSForDevice(devicePath string) (string, error) {
	nsid := NSIDFromDevicePath(devicePath)
	if nsid < 0 {
		return "", fmt.Errorf("%w: %s", ErrParseDevicePath, devicePath)
	}
	return c.NamespaceVS(devicePath, nsid)
}

func stringFromNullTerminated(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
