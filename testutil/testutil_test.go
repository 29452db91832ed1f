package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillBytes(t *testing.T) {
	rng := NewRNG(4711)

	buf := make([]byte, 1024)
	rng.FillBytes(buf)

	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
			break
		}
	}
	assert.False(t, allZero, "random fill should not leave the buffer zeroed")
}

func TestBytes(t *testing.T) {
	rng := NewRNG(4711)

	b := rng.Bytes(64)

	assert.Equal(t, 64, len(b))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	b1 := rng.Bytes(128)

	rng.Reset()
	b2 := rng.Bytes(128)

	assert.Equal(t, b1, b2)
}

func TestPattern(t *testing.T) {
	b := Pattern(512)

	assert.Equal(t, 512, len(b))
	assert.Equal(t, Pattern(512), b)
	assert.Equal(t, byte(0), b[0])
	assert.Equal(t, byte(250), b[250])
	assert.Equal(t, byte(0), b[251])
}
