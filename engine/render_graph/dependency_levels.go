package render_graph

// assignDependencyLevels computes the longest-path depth of every pass.
// order must be a topological order of the graph described by adjacency; on any other input the
// result is meaningless.
//
// Parameters:
//   - order: pass indices in topological order
//   - adjacency: the dependents of each pass
//
// Returns:
//   - []int: the level of each pass, indexed by pass index
//   - [][]int: levels[k] holds the ascending indices of the passes at level k
func assignDependencyLevels(order []int, adjacency [][]int) ([]int, [][]int) {
	perPass := make([]int, len(adjacency))
	for _, pass := range order {
		for _, dependent := range adjacency[pass] {
			perPass[dependent] = max(perPass[dependent], perPass[pass]+1)
		}
	}

	var levels [][]int
	for pass, level := range perPass {
		for len(levels) <= level {
			levels = append(levels, nil)
		}
		levels[level] = append(levels[level], pass)
	}
	return perPass, levels
}
