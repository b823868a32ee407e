package render_graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdjacency(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		adj := buildAdjacency(frameScenario())
		assert.Equal(t, [][]int{{1}, {2}, nil}, adj)
	})

	t.Run("fan in and fan out", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithOutputs("x")),
			NewPass("B", WithOutputs("y")),
			NewPass("C", WithInputs("x", "y"), WithOutputs("z")),
			NewPass("D", WithInputs("x")),
		}
		assert.Equal(t, [][]int{{2, 3}, {2}, nil, nil}, buildAdjacency(passes))
	})

	t.Run("self dependency is recorded", func(t *testing.T) {
		passes := []Pass{NewPass("A", WithInputs("x"), WithOutputs("x"))}
		assert.Equal(t, [][]int{{0}}, buildAdjacency(passes))
	})

	t.Run("shared reads create no edges", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithInputs("Persistent")),
			NewPass("B", WithInputs("Persistent")),
		}
		assert.Equal(t, [][]int{nil, nil}, buildAdjacency(passes))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, buildAdjacency(nil))
	})
}
