package j1939

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEngineSpeed(t *testing.T) {
	v, ok := DecodeEngineSpeed([]byte{0x00, 0x7D, 0x7D, 0x80, 0x3E, 0x00, 0x00, 0x00})
	assert.True(t, ok)
	assert.InDelta(t, 2000.0, v, 0.01)
}

func TestDecodeCoolantTemp(t *testing.T) {
	v, ok := DecodeCoolantTemp([]byte{0x8C, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.True(t, ok)
	assert.InDelta(t, 100.0, v, 0.01)
}

func TestDecodeWheelSpeed(t *testing.T) {
	v, ok := DecodeWheelSpeed([]byte{0xFF, 0x00, 0x69, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.True(t, ok)
	assert.InDelta(t, 105.0, v, 0.01)
}

func TestDecodeCurrentGear(t *testing.T) {
	var testCases = []struct {
		name   string
		byte3  byte
		expect float64
	}{
		{name: "reverse", byte3: 0x7C, expect: -1},
		{name: "neutral", byte3: 0x7D, expect: 0},
		{name: "8th gear", byte3: 0x85, expect: 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := []byte{0, 0, 0, tc.byte3, 0, 0, 0, 0}
			v, ok := DecodeCurrentGear(data)
			assert.True(t, ok)
			assert.Equal(t, tc.expect, v)
		})
	}
}

func TestDecodeSignal_SentinelInvalid(t *testing.T) {
	t.Run("8-bit sentinel", func(t *testing.T) {
		_, ok := DecodeCoolantTemp([]byte{0xFE, 0, 0, 0, 0, 0, 0, 0})
		assert.False(t, ok)
	})
	t.Run("16-bit sentinel", func(t *testing.T) {
		_, ok := DecodeEngineSpeed([]byte{0, 0, 0, 0x00, 0xFE, 0, 0, 0})
		assert.False(t, ok)
	})
	t.Run("32-bit sentinel", func(t *testing.T) {
		_, ok := DecodeEngineHours([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0})
		assert.False(t, ok)
	})
	t.Run("short data", func(t *testing.T) {
		_, ok := DecodeEngineSpeed([]byte{0, 0})
		assert.False(t, ok)
	})
}
