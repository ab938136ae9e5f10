package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden vectors for the raw 32-bit output stream. These pin the exact mixing
// function; if any of these fail, every campaign's weather history has changed.
func TestSourceGoldenVectors(t *testing.T) {
	tests := []struct {
		name string
		seed int32
		want []uint32
	}{
		{
			name: "seed 1",
			seed: 1,
			want: []uint32{0xa087eaf3, 0x00b349c9, 0x8706c4eb, 0xfb2627fd, 0xf7e79d2b, 0x47f66630},
		},
		{
			name: "seed 42",
			seed: 42,
			want: []uint32{0x99e1ef7c, 0x72c32b8a, 0xda3b32c0, 0xab73b0ad, 0x2cc09a8a, 0x86cec4d3},
		},
		{
			name: "seed 0",
			seed: 0,
			want: []uint32{0x4434b462, 0x00159c37, 0x39285b08, 0x256d8104, 0x77a2cbd4, 0x8b885631},
		},
		{
			name: "region hash seed",
			seed: 1512526710,
			want: []uint32{0xddc37f80, 0x3061e504, 0x02ced7a4, 0x04a4ebd8, 0x0b448c00, 0x5eb3336b},
		},
		{
			name: "date-shaped seed",
			seed: 20250812,
			want: []uint32{0x49fba2a1, 0x5db08298, 0x9847e9ef, 0xf53162e3, 0x4ab70f5d, 0x94c902a6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(tt.seed)
			for i, want := range tt.want {
				require.Equal(t, want, src.nextUint32(), "output %d", i)
			}
		})
	}
}

// Next must be the raw output divided by 2^32 exactly, never reaching 1.
func TestSourceNextNormalization(t *testing.T) {
	raw := NewSource(7)
	norm := NewSource(7)

	for i := 0; i < 1000; i++ {
		want := float64(raw.nextUint32()) / 4294967296.0
		got := norm.Next()
		require.Equal(t, want, got, "draw %d", i)
		require.GreaterOrEqual(t, got, 0.0)
		require.Less(t, got, 1.0)
	}
}

func TestSourceDeterminism(t *testing.T) {
	a := NewSource(-12345)
	b := NewSource(-12345)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestSourceDistinctSeedsDiverge(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)

	same := true
	for i := 0; i < 8; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	assert.False(t, same, "adjacent seeds must not produce identical streams")
}
