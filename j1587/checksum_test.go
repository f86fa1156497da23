package j1587

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_MakesSequenceSumToZero(t *testing.T) {
	data := []byte{128, 110, 212}
	cs := Checksum(data)
	assert.True(t, ValidateChecksum(append(append([]byte{}, data...), cs)))
}

func TestValidateChecksum(t *testing.T) {
	var testCases = []struct {
		name   string
		data   []byte
		expect bool
	}{
		{name: "ok, valid frame", data: []byte{128, 110, 212, 62}, expect: true},
		{name: "bad, corrupted byte", data: []byte{128, 110, 213, 62}, expect: false},
		{name: "ok, empty is trivially zero", data: []byte{}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ValidateChecksum(tc.data))
		})
	}
}
