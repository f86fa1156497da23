package rigwatchtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertScaledValue compares a decoded signal value against an expected
// value within delta, with a message identifying which signal failed.
func AssertScaledValue(t *testing.T, name string, expect, actual float64, delta float64) {
	assert.InDelta(t, expect, actual, delta, "signal `%v` value %v is different from expected %v", name, actual, expect)
}
