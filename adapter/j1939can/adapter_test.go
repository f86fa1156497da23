package j1939can

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// sudo ip link set can0 down && sudo /sbin/ip link set can0 up type can bitrate 250000

func xTestAdapter_ReadFromRealBus(t *testing.T) {
	a := NewAdapter("can0")
	if err := a.Initialize(); err != nil {
		assert.NoError(t, err)
		return
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := 0
	err := a.Run(ctx, func(id uint32, data []byte, length int, ts time.Time) {
		fmt.Printf("id=%#x data=%x len=%d\n", id, data, length)
		count++
		if count >= 20 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
}
