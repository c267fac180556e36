package situation

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/simulation"
)

// Axis is a declarative sweep descriptor: replicate the base population
// and spread Name's value linearly from Min to Max over Count points at
// Period (the build's default period when empty). Index is the slot the
// axis occupies among parallel axes over the same entity kind.
type Axis struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Period string
	Index  int
}

// Builder turns one situation document into a populated Simulation. It is
// build-scoped: create one per build, run the call sequence (normalize →
// populate → ingest → expand axes → finalize), hand off the result and
// discard it. Not safe for concurrent use.
type Builder struct {
	system        *simulation.System
	defaultPeriod *period.Period

	// inputBuffer maps variable → canonical period key → one value per
	// instance; origins remembers the document path of the first write so
	// commit-time failures localize without re-searching the document.
	inputBuffer map[string]map[string][]cty.Value
	origins     map[string]map[string][]string

	entityCounts map[string]int
	entityIDs    map[string][]string
	memberships  map[string][]int
	roles        map[string][]*entity.Role

	// axes[0] collects parallel axes; every further group is perpendicular
	// to all previous ones. The axes* maps overlay the base population
	// state once ExpandAxes has run.
	axes             [][]Axis
	axesEntityCounts map[string]int
	axesEntityIDs    map[string][]string
	axesMemberships  map[string][]int
	axesRoles        map[string][]*entity.Role
}

// NewBuilder creates a builder bound to sys. The entity and variable
// registries are resolved here once; no later call re-derives kind
// structure from strings.
func NewBuilder(sys *simulation.System) *Builder {
	return &Builder{
		system:           sys,
		inputBuffer:      make(map[string]map[string][]cty.Value),
		origins:          make(map[string]map[string][]string),
		entityCounts:     make(map[string]int),
		entityIDs:        make(map[string][]string),
		memberships:      make(map[string][]int),
		roles:            make(map[string][]*entity.Role),
		axes:             [][]Axis{{}},
		axesEntityCounts: make(map[string]int),
		axesEntityIDs:    make(map[string][]string),
		axesMemberships:  make(map[string][]int),
		axesRoles:        make(map[string][]*entity.Role),
	}
}

// SetDefaultPeriod sets the period bare (non period-keyed) variable values
// and period-less axes fall back to.
func (b *Builder) SetDefaultPeriod(key string) error {
	p, err := period.Parse(key)
	if err != nil {
		return err
	}
	b.defaultPeriod = &p
	return nil
}

// GetInput returns the buffered array for (variable, period), or nil when
// nothing was buffered. The period key is canonicalized when parsable.
func (b *Builder) GetInput(name, periodKey string) []cty.Value {
	if p, err := period.Parse(periodKey); err == nil {
		periodKey = p.Key()
	}
	return b.inputBuffer[name][periodKey]
}

// setInput stores an array under the canonical period key.
func (b *Builder) setInput(name, canonicalKey string, values []cty.Value) {
	buf, ok := b.inputBuffer[name]
	if !ok {
		buf = make(map[string][]cty.Value)
		b.inputBuffer[name] = buf
	}
	buf[canonicalKey] = values
}

// recordOrigin remembers the document path that first fed (variable,
// period), for precise error localization at commit time.
func (b *Builder) recordOrigin(name, canonicalKey string, path []string) {
	paths, ok := b.origins[name]
	if !ok {
		paths = make(map[string][]string)
		b.origins[name] = paths
	}
	if _, seen := paths[canonicalKey]; !seen {
		paths[canonicalKey] = path
	}
}

// getCount returns the effective instance count for a kind: the expanded
// count once axes have run, the declared count before.
func (b *Builder) getCount(plural string) int {
	if c, ok := b.axesEntityCounts[plural]; ok {
		return c
	}
	return b.entityCounts[plural]
}

// getIDs returns the effective ordered instance ids for a kind.
func (b *Builder) getIDs(plural string) []string {
	if ids, ok := b.axesEntityIDs[plural]; ok {
		return ids
	}
	return b.entityIDs[plural]
}

// getMemberships returns the effective membership array; empty for the
// person kind.
func (b *Builder) getMemberships(plural string) []int {
	if m, ok := b.axesMemberships[plural]; ok {
		return m
	}
	return b.memberships[plural]
}

// getRoles returns the effective role array; empty for the person kind.
func (b *Builder) getRoles(plural string) []*entity.Role {
	if r, ok := b.axesRoles[plural]; ok {
		return r
	}
	return b.roles[plural]
}

// axisEntity resolves the entity kind an axis variable belongs to.
func (b *Builder) axisEntity(name string) (*entity.Kind, error) {
	v, err := b.system.Variables.Get(name)
	if err != nil {
		return nil, newNotFoundError([]string{axesKey, name}, "axis variable %q was not found", name)
	}
	kind, ok := b.system.Entities.BySingular(v.Entity)
	if !ok {
		return nil, newError([]string{axesKey, name}, "axis variable %q belongs to unknown entity %q", name, v.Entity)
	}
	return kind, nil
}

// axisPeriodKey resolves an axis' target period to its canonical key.
func (b *Builder) axisPeriodKey(ax Axis) (string, error) {
	if ax.Period != "" {
		p, err := period.Parse(ax.Period)
		if err != nil {
			return "", newError([]string{axesKey, ax.Name}, "%s", err.Error())
		}
		return p.Key(), nil
	}
	if b.defaultPeriod == nil {
		return "", newError([]string{axesKey, ax.Name}, "axis has no period and no default period is configured")
	}
	return b.defaultPeriod.Key(), nil
}
