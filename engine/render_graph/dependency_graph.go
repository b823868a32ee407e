package render_graph

// buildAdjacency derives the dependency relation between passes from their resource names.
// adjacency[i] lists, in ascending order, the indices of every pass that reads a resource pass i
// writes. A pass that reads one of its own outputs lists itself, which the sorter rejects as a cycle.
//
// The test is run over every ordered pair, which is quadratic in the pass count; frame graphs hold
// tens of passes.
func buildAdjacency(passes []Pass) [][]int {
	outputs := make([]map[string]struct{}, len(passes))
	for i, p := range passes {
		set := make(map[string]struct{}, len(p.Outputs))
		for _, name := range p.Outputs {
			set[name] = struct{}{}
		}
		outputs[i] = set
	}

	adjacency := make([][]int, len(passes))
	for producer := range passes {
		for consumer, c := range passes {
			if consumes(c, outputs[producer]) {
				adjacency[producer] = append(adjacency[producer], consumer)
			}
		}
	}
	return adjacency
}

func consumes(p Pass, produced map[string]struct{}) bool {
	for _, name := range p.Inputs {
		if _, ok := produced[name]; ok {
			return true
		}
	}
	return false
}
