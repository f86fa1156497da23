package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifetime_ObserveEconomy_FirstSampleBecomesBothExtremes(t *testing.T) {
	l := DefaultLifetime(1700000000)

	l.ObserveEconomy(30.0)

	assert.Equal(t, 30.0, l.BestEconomy)
	assert.Equal(t, 30.0, l.WorstEconomy)
}

func TestLifetime_ObserveEconomy_TracksBestAndWorst(t *testing.T) {
	l := DefaultLifetime(1700000000)

	l.ObserveEconomy(30.0)
	l.ObserveEconomy(25.0) // new best
	l.ObserveEconomy(40.0) // new worst
	l.ObserveEconomy(35.0) // between the extremes, no change

	assert.Equal(t, 25.0, l.BestEconomy)
	assert.Equal(t, 40.0, l.WorstEconomy)
}
