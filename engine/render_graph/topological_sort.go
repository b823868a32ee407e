package render_graph

import "slices"

// sortFrame is one entry of the explicit DFS stack: a pass and the position of the next
// dependent to inspect. Dependents are scanned from the end of the adjacency list.
type sortFrame struct {
	pass int
	next int
}

// topologicalSort orders passes so that every producer precedes all of its consumers.
//
// The traversal is an iterative depth-first search, so stack depth does not grow with the graph.
// A pass is marked visited when it is pushed and therefore appears on the stack at most once.
// Reaching a dependent that is still on the stack is a back edge and fails the sort with a
// *CycleError naming the cycle. Roots and dependents are scanned in descending index order, which
// keeps unrelated passes in declaration order once the post-order is reversed.
//
// Parameters:
//   - passes: the declared passes (used for names in errors)
//   - adjacency: the dependents of each pass, as produced by buildAdjacency
//
// Returns:
//   - []int: pass indices in dependency order
//   - error: ErrEmptyGraph for an empty pass list, *CycleError on a cycle
func topologicalSort(passes []Pass, adjacency [][]int) ([]int, error) {
	n := len(passes)
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	visited := make([]bool, n)
	onStack := make([]bool, n)
	order := make([]int, 0, n)
	stack := make([]sortFrame, 0, n)

	push := func(pass int) {
		visited[pass] = true
		onStack[pass] = true
		stack = append(stack, sortFrame{pass: pass, next: len(adjacency[pass]) - 1})
	}

	for root := n - 1; root >= 0; root-- {
		if visited[root] {
			continue
		}
		push(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= 0 {
				dependent := adjacency[top.pass][top.next]
				top.next--
				if onStack[dependent] {
					return nil, newCycleError(passes, stack, dependent)
				}
				if !visited[dependent] {
					push(dependent)
				}
				continue
			}

			onStack[top.pass] = false
			order = append(order, top.pass)
			stack = stack[:len(stack)-1]
		}
	}

	slices.Reverse(order)
	return order, nil
}

// newCycleError builds the cycle path from the stack frame holding target up to the top of the stack.
func newCycleError(passes []Pass, stack []sortFrame, target int) *CycleError {
	start := slices.IndexFunc(stack, func(f sortFrame) bool { return f.pass == target })
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, passes[f.pass].Name)
	}
	path = append(path, passes[target].Name)
	return &CycleError{Passes: path}
}
