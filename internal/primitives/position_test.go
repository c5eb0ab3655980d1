package primitives_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionFromOffset(t *testing.T) {
	cases := []struct {
		label string
		want  primitives.Position
	}{
		{"A1", primitives.NewPosition(0, 0)},
		{"B3", primitives.NewPosition(1, 2)},
		{"C1", primitives.NewPosition(2, -1)},
	}
	for _, c := range cases {
		got, err := primitives.PositionFromOffset(c.label)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "label %s", c.label)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for _, label := range []string{"A1", "B1", "B2", "B5", "D4"} {
		pos, err := primitives.PositionFromOffset(label)
		require.NoError(t, err)
		assert.Equal(t, label, pos.String())
	}
}

func TestPositionDistanceAndNeighbors(t *testing.T) {
	origin := primitives.NewPosition(0, 0)
	for _, n := range origin.Neighbors() {
		assert.Equal(t, 1, origin.Distance(n))
		assert.True(t, origin.IsNeighbor(n))
	}
	far := primitives.NewPosition(3, 0)
	assert.Equal(t, 3, origin.Distance(far))
}
