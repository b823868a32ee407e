package render_graph

import (
	"slices"
)

// findHazards reports resources written by more than one pass of the same dependency level.
// Readers of a shared resource within a level are safe. A reader and a writer can never share a
// level because the read creates an edge between them.
func findHazards(passes []Pass, levels [][]int) []Hazard {
	var hazards []Hazard
	for level, indices := range levels {
		writers := make(map[string][]string)
		for _, i := range indices {
			for _, name := range passes[i].Outputs {
				writers[name] = append(writers[name], passes[i].Name)
			}
		}

		resources := make([]string, 0, len(writers))
		for name, names := range writers {
			if len(names) > 1 {
				resources = append(resources, name)
			}
		}
		slices.Sort(resources)

		for _, name := range resources {
			hazards = append(hazards, Hazard{Resource: name, Level: level, Passes: writers[name]})
		}
	}
	return hazards
}
