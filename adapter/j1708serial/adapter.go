// Package j1708serial is the UART transport binding for the J1708 layer:
// it feeds bytes read off a serial device into package j1587's framer and
// delivers framed messages to a callback, mirroring the byte-at-a-time
// read loop shape of the bus reader this core's serial adapters are all
// built from (spec.md §5, §6).
package j1708serial

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"

	"github.com/brnsen/rigwatch/j1587"
)

// RawMessageFunc is the raw J1708-message callback of spec.md §6: source
// MID, its raw bytes, and their length.
type RawMessageFunc func(mid byte, data []byte, length int, ts time.Time)

// Adapter reads J1708 traffic off a 9600 8-N-1 half-duplex serial port and
// delivers framed, checksum-validated messages to a callback. Framing and
// checksum logic live entirely in package j1587; this adapter only owns
// the byte stream.
type Adapter struct {
	port io.ReadWriteCloser
	open func() (io.ReadWriteCloser, error)

	framer *j1587.Framer

	receiveDataTimeout time.Duration
	timeNow            func() time.Time

	log *log.Entry
}

// NewAdapter creates an Adapter bound to devicePath (e.g. "/dev/ttyUSB0").
// Call Initialize before Run.
func NewAdapter(devicePath string) *Adapter {
	return &Adapter{
		open: func() (io.ReadWriteCloser, error) {
			return serial.OpenPort(&serial.Config{
				Name:        devicePath,
				Baud:        9600,
				Size:        8,
				Parity:      serial.ParityNone,
				StopBits:    serial.Stop1,
				ReadTimeout: 20 * time.Millisecond,
			})
		},
		framer:             j1587.NewFramer(),
		receiveDataTimeout: 5 * time.Second,
		timeNow:            time.Now,
		log:                log.WithField("component", "j1708serial.adapter"),
	}
}

// Initialize opens the serial port.
func (a *Adapter) Initialize() error {
	port, err := a.open()
	if err != nil {
		return err
	}
	a.port = port
	return nil
}

// Close releases the serial port.
func (a *Adapter) Close() error {
	if a.port == nil {
		return nil
	}
	return a.port.Close()
}

// Run reads bytes off the port, feeds them to the framer, and invokes fn
// for each message the framer completes, until ctx is cancelled or the bus
// goes silent longer than the receive-data timeout.
func (a *Adapter) Run(ctx context.Context, fn RawMessageFunc) error {
	buf := make([]byte, 1)
	lastReadWithData := a.timeNow()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := a.port.Read(buf)
		if err != nil && !(errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, io.EOF)) {
			return err
		}

		now := a.timeNow()
		if n == 0 {
			if now.Sub(lastReadWithData) > a.receiveDataTimeout {
				return errors.New("j1708serial: no data received within timeout")
			}
			continue
		}
		lastReadWithData = now

		a.deliver(buf[0], now, fn)
	}
}

// deliver pushes one byte into the framer and drains any message it
// completes. The byte whose arrival completes a message is not part of it
// (see j1587.Framer.Push): it starts the next message, so an unconsumed
// byte is re-pushed once the drain returns the framer to idle.
func (a *Adapter) deliver(b byte, ts time.Time, fn RawMessageFunc) {
	if consumed := a.framer.Push(b, ts); !consumed {
		if msg, ok := a.framer.TakeMessage(ts); ok && msg.ChecksumValid {
			fn(msg.MID, msg.Raw, len(msg.Raw), msg.Timestamp)
		}
		a.framer.Push(b, ts)
	}
}
