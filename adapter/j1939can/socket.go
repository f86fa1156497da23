// Package j1939can is the SocketCAN transport binding for the J1939 layer:
// it moves raw extended-identifier frames between a can0-style Linux
// interface and the decode logic in package j1939, which never touches a
// socket itself (spec.md §5, §6).
package j1939can

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const (
	canRaw = 1

	// canIDEFFFlag marks bit 31 of the SocketCAN frame's identifier word:
	// extended (29-bit) vs standard (11-bit) frame format.
	canIDEFFFlag = uint32(1 << 31)
	// canIDRTRFlag marks bit 30: remote transmission request.
	canIDRTRFlag = uint32(1 << 30)
	// canIDERRFlag marks bit 29: error frame rather than a data frame.
	canIDERRFlag = uint32(1 << 29)
	// canIDMask keeps only the low 29 identifier bits.
	canIDMask = uint32(1<<29) - 1
)

var errReadTimeout = errors.New("j1939can: read timeout")
var errWriteTimeout = errors.New("j1939can: write timeout")

// Frame is one raw SocketCAN frame after the EFF/RTR/ERR flag bits have
// been stripped from its identifier. This core is listen-only: sendFrame
// exists for bench fixtures and simulator loop-back, never for J1939
// address claiming or requests (spec.md's Non-goals).
type Frame struct {
	ID     uint32
	Data   [8]byte
	Length uint8
	Time   time.Time
}

// socket wraps one raw AF_CAN/SOCK_RAW file descriptor bound to a single
// interface (spec.md §6: "J1939 bus side ... extended (29-bit) identifier
// CAN frames at 250 kbit/s").
type socket struct {
	fd      int
	timeNow func() time.Time
}

func newSocket(ifName string) (*socket, error) {
	ifi, err := net.InterfaceByName(ifName)
	if err != nil {
		return nil, fmt.Errorf("j1939can: bad interface %q: %w", ifName, err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, canRaw)
	if err != nil {
		return nil, fmt.Errorf("j1939can: could not open CAN socket: %w", err)
	}

	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: ifi.Index}); err != nil {
		return nil, fmt.Errorf("j1939can: could not bind %q: %w", ifName, err)
	}

	return &socket{fd: fd, timeNow: time.Now}, nil
}

func isContinuableSocketErr(err error) bool {
	return err == syscall.EWOULDBLOCK || err == syscall.EINTR
}

func (s *socket) setReadTimeout(timeout time.Duration) error {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	return unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (s *socket) close() error {
	return unix.Close(s.fd)
}

// sendFrame writes a 29-bit extended-identifier frame, for simulator
// loop-back benches. Real-vehicle use of this core never calls it.
func (s *socket) sendFrame(f Frame) error {
	raw := make([]byte, 16)
	binary.LittleEndian.PutUint32(raw[0:4], (f.ID&canIDMask)|canIDEFFFlag)
	raw[4] = f.Length
	copy(raw[8:], f.Data[:f.Length])

	_, err := unix.Write(s.fd, raw)
	if isContinuableSocketErr(err) {
		return errWriteTimeout
	}
	return err
}

func (s *socket) readFrame() (Frame, error) {
	raw := make([]byte, 16)
	if _, err := unix.Read(s.fd, raw); err != nil {
		if isContinuableSocketErr(err) {
			return Frame{}, errReadTimeout
		}
		return Frame{}, err
	}

	canID := binary.LittleEndian.Uint32(raw[0:4])
	if canID&canIDRTRFlag != 0 {
		return Frame{}, errors.New("j1939can: read a remote-transmission-request frame")
	}
	if canID&canIDERRFlag != 0 {
		return Frame{}, errors.New("j1939can: read a CAN error frame")
	}

	f := Frame{
		ID:     canID & canIDMask,
		Length: raw[4],
		Time:   s.timeNow(),
	}
	if f.Length > 8 {
		f.Length = 8
	}
	copy(f.Data[:], raw[8:8+f.Length])
	return f, nil
}
