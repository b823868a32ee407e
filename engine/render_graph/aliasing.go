package render_graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// ResourcePlacement is the position of one transient resource inside a memory region.
type ResourcePlacement struct {
	// Resource is the transient resource name.
	Resource string
	// Region is the index of the region holding the resource.
	Region int
	// Offset is the byte offset of the resource within the region.
	Offset uint64
	// Size is the byte size of the resource.
	Size uint64
	// Lifetime is the level range over which the resource is live.
	Lifetime Lifetime
}

// End returns the first byte past the placement.
func (p ResourcePlacement) End() uint64 {
	return p.Offset + p.Size
}

// MemoryRegion is a fixed-size byte range shared by transient resources. Any two placements whose
// lifetimes overlap occupy disjoint byte ranges. The allocator creates one physical allocation per
// region and binds each placement as an aliased sub-range.
type MemoryRegion struct {
	// Index is the position of the region in the aliasing plan.
	Index int
	// Size is the required byte size of the region.
	Size uint64
	// Placements are the resources assigned to the region, in placement order.
	Placements []ResourcePlacement
}

// transientResource is the packing input for one resource.
type transientResource struct {
	name     string
	size     uint64
	lifetime Lifetime
}

// boundary is a start or end offset of an occupied byte range during the gap sweep.
type boundary struct {
	offset uint64
	end    bool
}

// generateTransientResourceAliasingInfo computes the lifetime of every declared transient resource
// and packs the resources into memory regions.
//
// Parameters:
//   - passes: the declared passes
//   - levels: pass indices grouped by dependency level
//   - infos: the size information of every transient resource
//   - declared: the transient resource names in declaration order
//   - alignment: the placement alignment in bytes (0 or 1 for none)
//
// Returns:
//   - []MemoryRegion: the aliasing plan
//   - map[string]Lifetime: the lifetime of each transient resource
//   - error: ErrUnknownTransientResource or ErrInvalidResource on malformed declarations
func generateTransientResourceAliasingInfo(passes []Pass, levels [][]int, infos map[string]TransientResourceInfo, declared []string, alignment uint64) ([]MemoryRegion, map[string]Lifetime, error) {
	perPass := make([]int, len(passes))
	for level, indices := range levels {
		for _, i := range indices {
			perPass[i] = level
		}
	}

	lifetimes, err := computeLifetimes(passes, perPass, infos, declared)
	if err != nil {
		return nil, nil, err
	}

	resources := make([]transientResource, 0, len(declared))
	for _, name := range declared {
		size, err := infos[name].ByteSize()
		if err != nil {
			return nil, nil, fmt.Errorf("transient resource %q: %w", name, err)
		}
		resources = append(resources, transientResource{name: name, size: size, lifetime: lifetimes[name]})
	}

	return packRegions(resources, alignment), lifetimes, nil
}

// computeLifetimes derives the level range of every transient resource. Begin is the lowest level
// of any pass writing the resource; End is the highest level of any pass reading it, or Begin when
// nothing reads it.
func computeLifetimes(passes []Pass, perPass []int, infos map[string]TransientResourceInfo, declared []string) (map[string]Lifetime, error) {
	for _, p := range passes {
		for _, name := range p.TransientOutputs {
			if _, ok := infos[name]; !ok {
				return nil, fmt.Errorf("%w: pass %q writes %q", ErrUnknownTransientResource, p.Name, name)
			}
		}
	}

	lifetimes := make(map[string]Lifetime, len(declared))
	for _, name := range declared {
		begin, end := -1, -1
		for i, p := range passes {
			level := perPass[i]
			if p.Writes(name) && (begin < 0 || level < begin) {
				begin = level
			}
			if p.Reads(name) {
				end = max(end, level)
			}
		}
		if begin < 0 {
			return nil, fmt.Errorf("%w: %q is never written by any pass", ErrInvalidResource, name)
		}
		lifetimes[name] = Lifetime{Begin: begin, End: max(end, begin)}
	}
	return lifetimes, nil
}

// packRegions assigns every resource to a region, largest first. Each round opens a region sized
// to the largest pending resource and places every pending resource that fits a free gap; the rest
// wait for the next round. The first resource of a round always lands at offset 0, so every round
// makes progress.
func packRegions(resources []transientResource, alignment uint64) []MemoryRegion {
	pending := slices.Clone(resources)
	slices.SortStableFunc(pending, func(a, b transientResource) int {
		return cmp.Compare(b.size, a.size)
	})

	var regions []MemoryRegion
	for len(pending) > 0 {
		region := MemoryRegion{Index: len(regions), Size: pending[0].size}
		remaining := make([]transientResource, 0, len(pending))
		for _, r := range pending {
			offset, ok := findPlacement(region, r, alignment)
			if !ok {
				remaining = append(remaining, r)
				continue
			}
			region.Placements = append(region.Placements, ResourcePlacement{
				Resource: r.name,
				Region:   region.Index,
				Offset:   offset,
				Size:     r.size,
				Lifetime: r.lifetime,
			})
		}
		regions = append(regions, region)
		pending = remaining
	}
	return regions
}

// findPlacement returns the best-fit offset for r in region: the start of the smallest free gap
// that holds r, where only placements with overlapping lifetimes occupy bytes. At equal offsets an
// end boundary sorts before a start boundary, so abutting placements leave no phantom gap, and
// zero-length gaps are never chosen. A zero-size resource occupies no bytes and is placed at the
// best gap if one exists, otherwise at offset 0.
func findPlacement(region MemoryRegion, r transientResource, alignment uint64) (uint64, bool) {
	if len(region.Placements) == 0 {
		return 0, true
	}

	points := make([]boundary, 0, 2*len(region.Placements))
	for _, p := range region.Placements {
		if p.Size == 0 || !p.Lifetime.Overlaps(r.lifetime) {
			continue
		}
		points = append(points, boundary{offset: p.Offset}, boundary{offset: p.End(), end: true})
	}
	slices.SortFunc(points, func(a, b boundary) int {
		if c := cmp.Compare(a.offset, b.offset); c != 0 {
			return c
		}
		switch {
		case a.end && !b.end:
			return -1
		case !a.end && b.end:
			return 1
		}
		return 0
	})

	var best, bestGap uint64
	found := false
	consider := func(start, end uint64) {
		if end <= start {
			return
		}
		offset := common.AlignUp(start, alignment)
		if offset > end || end-offset < r.size {
			return
		}
		if gap := end - start; !found || gap < bestGap {
			best, bestGap, found = offset, gap, true
		}
	}

	var cursor uint64
	active := 0
	for _, pt := range points {
		if pt.end {
			active--
			if active == 0 {
				cursor = pt.offset
			}
			continue
		}
		if active == 0 {
			consider(cursor, pt.offset)
		}
		active++
	}
	consider(cursor, region.Size)

	if !found && r.size == 0 {
		return 0, true
	}
	return best, found
}
