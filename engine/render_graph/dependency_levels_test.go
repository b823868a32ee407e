package render_graph

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelsOf(t *testing.T, passes []Pass) ([]int, [][]int, [][]int) {
	t.Helper()
	adjacency := buildAdjacency(passes)
	order, err := topologicalSort(passes, adjacency)
	require.NoError(t, err)
	perPass, levels := assignDependencyLevels(order, adjacency)
	return perPass, levels, adjacency
}

func TestAssignDependencyLevels(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		perPass, levels, _ := levelsOf(t, frameScenario())
		assert.Equal(t, []int{0, 1, 2}, perPass)
		assert.Equal(t, [][]int{{0}, {1}, {2}}, levels)
	})

	t.Run("diamond shares a level", func(t *testing.T) {
		perPass, levels, _ := levelsOf(t, []Pass{
			NewPass("A", WithOutputs("a")),
			NewPass("B", WithInputs("a"), WithOutputs("b")),
			NewPass("C", WithInputs("a"), WithOutputs("c")),
			NewPass("D", WithInputs("b", "c")),
		})
		assert.Equal(t, []int{0, 1, 1, 2}, perPass)
		assert.Equal(t, [][]int{{0}, {1, 2}, {3}}, levels)
	})

	t.Run("longest path wins over shortcut", func(t *testing.T) {
		perPass, _, _ := levelsOf(t, []Pass{
			NewPass("C", WithInputs("x", "y")),
			NewPass("A", WithOutputs("x")),
			NewPass("B", WithInputs("x"), WithOutputs("y")),
		})
		assert.Equal(t, []int{2, 0, 1}, perPass)
	})

	t.Run("independent passes share level zero", func(t *testing.T) {
		perPass, levels, _ := levelsOf(t, []Pass{NewPass("A"), NewPass("B"), NewPass("C")})
		assert.Equal(t, []int{0, 0, 0}, perPass)
		assert.Equal(t, [][]int{{0, 1, 2}}, levels)
	})
}

func TestAssignDependencyLevels_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 50 {
		passes := randomDAG(rng, 1+rng.IntN(40))
		perPass, levels, adjacency := levelsOf(t, passes)

		for producer, dependents := range adjacency {
			for _, consumer := range dependents {
				assert.Greater(t, perPass[consumer], perPass[producer])
			}
		}

		count := 0
		for level, indices := range levels {
			assert.NotEmpty(t, indices, "level %d must not be empty", level)
			for _, i := range indices {
				assert.Equal(t, level, perPass[i])
				count++
			}
		}
		assert.Equal(t, len(passes), count)
	}
}
