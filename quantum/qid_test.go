package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQidOrdering(t *testing.T) {
	qids := []Qid{
		GridQubit{Row: 0, Col: 1},
		LineQubit(2),
		LineQubit(0),
		GridQubit{Row: 0, Col: 0},
		NewLineQid(1, 3),
	}
	SortQids(qids)

	// Type name first (GridQubit < LineQid < LineQubit), then key parts.
	assert.Equal(t, GridQubit{Row: 0, Col: 0}, qids[0])
	assert.Equal(t, GridQubit{Row: 0, Col: 1}, qids[1])
	assert.Equal(t, NewLineQid(1, 3), qids[2])
	assert.Equal(t, LineQubit(0), qids[3])
	assert.Equal(t, LineQubit(2), qids[4])
}

func TestQidsOfDifferentTypesNeverEqual(t *testing.T) {
	assert.False(t, QidsEqual(LineQubit(0), GridQubit{Row: 0, Col: 0}))
	assert.True(t, QidsEqual(LineQubit(3), LineQubit(3)))
}

func TestWithLevelsDirectional(t *testing.T) {
	q := NewLineQid(0, 3)

	_, err := WithFewerLevels(q, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many quantum levels")
	assert.Contains(t, err.Error(), "expected <= 3 but got 4")

	_, err = WithMoreLevels(q, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too few quantum levels")

	shrunk, err := WithFewerLevels(q, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, shrunk.Levels())
	// Same underlying line position.
	assert.Equal(t, q.KeyParts(), shrunk.KeyParts())
}

func TestQidShapeOf(t *testing.T) {
	shape := QidShapeOf([]Qid{LineQubit(0), NewLineQid(1, 3), GridQubit{}})
	assert.Equal(t, []int{2, 3, 2}, shape)
}
