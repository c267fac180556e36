package situation

import (
	"slices"
	"strconv"

	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/entity"
)

// AddParallelAxis appends an axis to the first axis group. All parallel
// axes share one entity kind and step count and occupy disjoint slots of
// the same expansion.
func (b *Builder) AddParallelAxis(ax Axis) {
	b.axes[0] = append(b.axes[0], ax)
}

// AddPerpendicularAxis opens a new axis group perpendicular to all
// previous ones; perpendicular groups combine as a full Cartesian product.
func (b *Builder) AddPerpendicularAxis(ax Axis) {
	b.axes = append(b.axes, []Axis{ax})
}

// ExpandAxes recomputes population size, ids, roles and memberships for
// every entity kind targeted by an axis, and rewrites the buffered arrays
// with swept values. It dispatches on shape: one non-empty group runs the
// pure parallel expansion, several run the perpendicular (Cartesian) one.
//
// Re-runnable after axis list changes: only the expanded-count overlay is
// reset per call, so population size and buffered arrays are stable when
// the axis list has not changed. Arrays are always freshly allocated —
// references held to pre-expansion arrays never see the expanded state.
func (b *Builder) ExpandAxes() error {
	b.axesEntityCounts = make(map[string]int)

	groups := make([][]Axis, 0, len(b.axes))
	for _, g := range b.axes {
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}
	switch len(groups) {
	case 0:
		return nil
	case 1:
		return b.expandParallel(groups[0])
	default:
		return b.expandPerpendicular(groups)
	}
}

// expandParallel replicates the axis entity's population N times (N = the
// shared step count) and writes each axis' linear spread at its slot.
func (b *Builder) expandParallel(axes []Axis) error {
	first := axes[0]
	count := first.Count
	if count < 1 {
		return newError([]string{axesKey, first.Name}, "axis count must be at least 1")
	}
	kind, err := b.axisEntity(first.Name)
	if err != nil {
		return err
	}
	plural := kind.Plural
	size := b.getCount(plural)
	if size == 0 {
		return newError([]string{axesKey, first.Name}, "no %s population to expand", plural)
	}
	newCount := count * size
	b.axesEntityCounts[plural] = newCount

	// Ids: tile the current sequence, then suffix every element with its
	// flattened position to keep them unique.
	ids := b.getIDs(plural)
	adjusted := make([]string, newCount)
	for i := 0; i < newCount; i++ {
		adjusted[i] = ids[i%len(ids)] + strconv.Itoa(i)
	}
	b.axesEntityIDs[plural] = adjusted

	// Roles: tiled unchanged.
	origRoles := b.getRoles(plural)
	tiled := make([]*entity.Role, 0, len(origRoles)*count)
	for k := 0; k < count; k++ {
		tiled = append(tiled, origRoles...)
	}
	b.axesRoles[plural] = tiled

	// Memberships (group kinds only): repetition block k points at that
	// repetition's instances, so every value shifts by k × size.
	origMembers := b.getMemberships(plural)
	if len(origMembers) > 0 {
		adjMembers := make([]int, 0, len(origMembers)*count)
		for k := 0; k < count; k++ {
			for _, m := range origMembers {
				adjMembers = append(adjMembers, m+k*size)
			}
		}
		b.axesMemberships[plural] = adjMembers
	}

	for _, ax := range axes {
		if err := b.checkAxis(ax, kind, count, size); err != nil {
			return err
		}
		key, err := b.axisPeriodKey(ax)
		if err != nil {
			return err
		}
		arr, err := b.axisArray(ax.Name, key, newCount)
		if err != nil {
			return err
		}
		pts := linspace(ax.Min, ax.Max, count)
		for k := 0; k < count; k++ {
			arr[ax.Index+k*size] = cty.NumberFloatVal(pts[k])
		}
		b.setInput(ax.Name, key, arr)
	}
	return nil
}

// expandPerpendicular combines the groups as a full factorial design:
// every entity kind targeted by a group grows to Πcountᵢ × its original
// size, and each axis' values follow its group's coordinate in the
// flattened grid. Memberships and roles are not rewritten in this branch;
// group-kind memberships keep referencing pre-expansion instance indices.
func (b *Builder) expandPerpendicular(groups [][]Axis) error {
	counts := make([]int, len(groups))
	kinds := make([]*entity.Kind, len(groups))
	stepsCount := 1
	for gi, g := range groups {
		first := g[0]
		if first.Count < 1 {
			return newError([]string{axesKey, first.Name}, "axis count must be at least 1")
		}
		kind, err := b.axisEntity(first.Name)
		if err != nil {
			return err
		}
		counts[gi] = first.Count
		kinds[gi] = kind
		stepsCount *= first.Count
	}

	// Per-entity sizes are resolved before any count overlay of this call.
	sizes := make(map[string]int, len(groups))
	for gi := range groups {
		plural := kinds[gi].Plural
		if _, ok := sizes[plural]; !ok {
			sizes[plural] = b.getCount(plural)
		}
	}

	for gi, g := range groups {
		kind := kinds[gi]
		plural := kind.Plural
		size := sizes[plural]
		if size == 0 {
			return newError([]string{axesKey, g[0].Name}, "no %s population to expand", plural)
		}
		newCount := stepsCount * size
		b.axesEntityCounts[plural] = newCount

		ids := b.getIDs(plural)
		adjusted := make([]string, newCount)
		for i := 0; i < newCount; i++ {
			adjusted[i] = ids[i%len(ids)] + strconv.Itoa(i)
		}
		b.axesEntityIDs[plural] = adjusted

		scaleDen := counts[gi] - 1
		if scaleDen < 1 {
			scaleDen = 1
		}
		for _, ax := range g {
			if err := b.checkAxis(ax, kind, counts[gi], size); err != nil {
				return err
			}
			key, err := b.axisPeriodKey(ax)
			if err != nil {
				return err
			}
			arr, err := b.axisArray(ax.Name, key, newCount)
			if err != nil {
				return err
			}
			span := ax.Max - ax.Min
			for f := 0; f < stepsCount; f++ {
				coord := gridCoord(counts, gi, f)
				arr[ax.Index+f*size] = cty.NumberFloatVal(ax.Min + float64(coord)*span/float64(scaleDen))
			}
			b.setInput(ax.Name, key, arr)
		}
	}
	return nil
}

// checkAxis validates an axis against its group: shared step count,
// shared entity kind, slot inside the per-repetition block.
func (b *Builder) checkAxis(ax Axis, kind *entity.Kind, count, size int) error {
	v, err := b.system.Variables.Get(ax.Name)
	if err != nil {
		return newNotFoundError([]string{axesKey, ax.Name}, "axis variable %q was not found", ax.Name)
	}
	if v.Entity != kind.Key {
		return newError([]string{axesKey, ax.Name},
			"parallel axes must target the same entity kind: %q is defined for %q, group targets %q",
			ax.Name, v.Entity, kind.Key)
	}
	if ax.Count != count {
		return newError([]string{axesKey, ax.Name},
			"parallel axes must share the same count: got %d, group uses %d", ax.Count, count)
	}
	if ax.Index < 0 || ax.Index >= size {
		return newError([]string{axesKey, ax.Name},
			"axis index %d out of range for a population of size %d", ax.Index, size)
	}
	return nil
}

// axisArray fetches the buffered array for (name, period key), or creates
// a default-filled one of the expanded size. A stale buffer of another
// size is superseded, never grown in place.
func (b *Builder) axisArray(name, key string, newCount int) ([]cty.Value, error) {
	arr := b.inputBuffer[name][key]
	if len(arr) != newCount {
		v, err := b.system.Variables.Get(name)
		if err != nil {
			return nil, newNotFoundError([]string{axesKey, name}, "axis variable %q was not found", name)
		}
		arr = v.DefaultArray(newCount)
	}
	return arr, nil
}

// linspace returns n points evenly spaced over [lo, hi], both inclusive;
// a single point collapses to lo.
func linspace(lo, hi float64, n int) []float64 {
	pts := make([]float64, n)
	if n == 1 {
		pts[0] = lo
		return pts
	}
	step := (hi - lo) / float64(n-1)
	for i := range pts {
		pts[i] = lo + float64(i)*step
	}
	return pts
}

// gridCoord returns group k's coordinate at flattened position flat in
// the factorial grid. Layout is row-major over the group counts with the
// first two dimensions swapped, so the first group varies fastest and the
// second slowest of the two, further groups nesting inward in order.
func gridCoord(counts []int, k, flat int) int {
	dims := slices.Clone(counts)
	d := k
	if len(dims) >= 2 {
		dims[0], dims[1] = counts[1], counts[0]
		if k == 0 {
			d = 1
		} else if k == 1 {
			d = 0
		}
	}
	idx := make([]int, len(dims))
	rem := flat
	for i := len(dims) - 1; i >= 0; i-- {
		idx[i] = rem % dims[i]
		rem /= dims[i]
	}
	return idx[d]
}
