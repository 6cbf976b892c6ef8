package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoakFlatFloor(t *testing.T) {
	r, err := run(config{Bodies: 9, Frames: 120, DT: 1.0 / 60, Seed: 1, Profile: "player"})
	require.NoError(t, err)

	assert.Equal(t, 9, r.Bodies)
	assert.Equal(t, 120, r.Frames)
	assert.Zero(t, r.Tunnelled)
	assert.Less(t, r.MaxPenetration, float32(0.5))
	assert.LessOrEqual(t, r.Mean, r.Max)
}

func TestSoakMissingLevel(t *testing.T) {
	_, err := run(config{Level: "does/not/exist.json", Bodies: 1, Frames: 1, DT: 1.0 / 60})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	var times []time.Duration
	for i := 1; i <= 100; i++ {
		times = append(times, time.Duration(i)*time.Millisecond)
	}
	mean, p99, worst := summarize(times)
	assert.Equal(t, 50500*time.Microsecond, mean)
	assert.Equal(t, 99*time.Millisecond, p99)
	assert.Equal(t, 100*time.Millisecond, worst)

	mean, p99, worst = summarize(nil)
	assert.Zero(t, mean+p99+worst)
}
