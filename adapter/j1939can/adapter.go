package j1939can

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// RawFrameFunc is the raw CAN-frame callback of spec.md §6: a 29-bit
// identifier, its payload bytes, and the payload length.
type RawFrameFunc func(id uint32, data []byte, length int, ts time.Time)

// Adapter reads raw J1939 frames off a SocketCAN interface and delivers
// them to a caller-supplied callback. It never decodes a PGN or reassembles
// transport-protocol packets itself; that is package j1939's job (spec.md
// §5: the CAN receiver context "does no decoding beyond assembling raw
// frames").
type Adapter struct {
	sock *socket

	ifName             string
	receiveDataTimeout time.Duration
	timeNow            func() time.Time

	log *log.Entry
}

// NewAdapter creates an Adapter bound to ifName (e.g. "can0"). Call
// Initialize before Run.
func NewAdapter(ifName string) *Adapter {
	return &Adapter{
		ifName:             ifName,
		receiveDataTimeout: 5 * time.Second,
		timeNow:            time.Now,
		log:                log.WithField("component", "j1939can.adapter"),
	}
}

// Initialize opens and binds the underlying CAN socket.
func (a *Adapter) Initialize() error {
	sock, err := newSocket(a.ifName)
	if err != nil {
		return err
	}
	a.sock = sock
	return nil
}

// Close releases the underlying socket.
func (a *Adapter) Close() error {
	if a.sock == nil {
		return nil
	}
	return a.sock.close()
}

// Run blocks reading frames and invoking fn for each one until ctx is
// cancelled or the bus goes silent for longer than the receive-data
// timeout, at which point it returns the triggering error.
func (a *Adapter) Run(ctx context.Context, fn RawFrameFunc) error {
	start := a.timeNow()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := a.sock.setReadTimeout(50 * time.Millisecond); err != nil {
			return err
		}
		frame, err := a.sock.readFrame()
		now := a.timeNow()

		if err != nil {
			if errors.Is(err, errReadTimeout) {
				if now.Sub(start) > a.receiveDataTimeout {
					return err
				}
				continue
			}
			a.log.WithError(err).Debug("dropped unreadable CAN frame")
			start = now
			continue
		}

		start = now
		fn(frame.ID, frame.Data[:frame.Length], int(frame.Length), frame.Time)
	}
}
