package render_graph

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologicalSort(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		passes := frameScenario()
		order, err := topologicalSort(passes, buildAdjacency(passes))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, order)
	})

	t.Run("chain declared in reverse", func(t *testing.T) {
		scenario := frameScenario()
		passes := []Pass{scenario[2], scenario[1], scenario[0]}
		order, err := topologicalSort(passes, buildAdjacency(passes))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 0}, order)
	})

	t.Run("unrelated passes keep declaration order", func(t *testing.T) {
		passes := []Pass{NewPass("A"), NewPass("B"), NewPass("C")}
		order, err := topologicalSort(passes, buildAdjacency(passes))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, order)
	})

	t.Run("diamond", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithOutputs("a")),
			NewPass("B", WithInputs("a"), WithOutputs("b")),
			NewPass("C", WithInputs("a"), WithOutputs("c")),
			NewPass("D", WithInputs("b", "c")),
		}
		order, err := topologicalSort(passes, buildAdjacency(passes))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, order)
	})

	t.Run("empty pass list is rejected", func(t *testing.T) {
		_, err := topologicalSort(nil, nil)
		assert.ErrorIs(t, err, ErrEmptyGraph)
	})
}

func TestTopologicalSort_Cycles(t *testing.T) {
	t.Run("two pass cycle", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithInputs("Y"), WithOutputs("X")),
			NewPass("B", WithInputs("X"), WithOutputs("Y")),
		}
		order, err := topologicalSort(passes, buildAdjacency(passes))
		require.Error(t, err)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, ErrCycle)

		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, []string{"B", "A", "B"}, cycleErr.Passes)
		assert.ErrorContains(t, err, "B -> A -> B")
	})

	t.Run("self loop", func(t *testing.T) {
		passes := []Pass{NewPass("Blur", WithInputs("Image"), WithOutputs("Image"))}
		_, err := topologicalSort(passes, buildAdjacency(passes))

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"Blur", "Blur"}, cycleErr.Passes)
	})

	t.Run("longer cycle", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithInputs("d"), WithOutputs("a")),
			NewPass("B", WithInputs("a"), WithOutputs("b")),
			NewPass("C", WithInputs("b"), WithOutputs("c")),
			NewPass("D", WithInputs("c"), WithOutputs("d")),
		}
		_, err := topologicalSort(passes, buildAdjacency(passes))

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Len(t, cycleErr.Passes, 5)
		assert.Equal(t, cycleErr.Passes[0], cycleErr.Passes[4])
	})

	t.Run("cycle in a disjoint component", func(t *testing.T) {
		passes := []Pass{
			NewPass("A", WithOutputs("a")),
			NewPass("B", WithInputs("a")),
			NewPass("X", WithInputs("z"), WithOutputs("x")),
			NewPass("Y", WithInputs("x"), WithOutputs("y")),
			NewPass("Z", WithInputs("y"), WithOutputs("z")),
		}
		_, err := topologicalSort(passes, buildAdjacency(passes))
		assert.ErrorIs(t, err, ErrCycle)
	})
}

func TestTopologicalSort_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		passes := randomDAG(rng, 1+rng.IntN(40))
		adjacency := buildAdjacency(passes)

		order, err := topologicalSort(passes, adjacency)
		require.NoError(t, err)
		require.Len(t, order, len(passes))

		position := make([]int, len(passes))
		seen := make([]bool, len(passes))
		for pos, i := range order {
			require.False(t, seen[i], "pass %d appears twice", i)
			seen[i] = true
			position[i] = pos
		}
		for producer, dependents := range adjacency {
			for _, consumer := range dependents {
				assert.Less(t, position[producer], position[consumer],
					"%s must precede %s", passes[producer].Name, passes[consumer].Name)
			}
		}
	}
}
