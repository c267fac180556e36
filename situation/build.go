package situation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/simulation"
)

// axesKey is the reserved top-level document key carrying axis groups; it
// is never an entity name.
const axesKey = "axes"

// BuildFromDict builds a simulation from a decoded situation document,
// dispatching on shape: a document keyed by entity plurals takes the
// fully-specified path, anything else is read as bare variables over a
// default population.
func (b *Builder) BuildFromDict(doc any) (*simulation.Simulation, error) {
	obj, err := checkObject(doc, []string{"error"})
	if err != nil {
		return nil, err
	}
	obj = b.ExplicitSingularEntities(obj)
	for _, key := range obj.Keys() {
		if _, ok := b.system.Entities.ByPlural(key); ok {
			return b.BuildFromEntities(obj)
		}
	}
	return b.BuildFromVariables(obj)
}

// BuildFromEntities builds from a document keyed by entity plurals:
// persons first, then every group kind, then axis expansion, then a
// finalize pass per kind. Every top-level key must be a known plural or
// the axes key; persons and every group kind are mandatory.
func (b *Builder) BuildFromEntities(doc any) (*simulation.Simulation, error) {
	obj, err := checkObject(doc, []string{"error"})
	if err != nil {
		return nil, err
	}
	sim := simulation.New(b.system)

	axesRaw, hasAxes := obj.Get(axesKey)

	var unexpected []string
	for _, key := range obj.Keys() {
		if key == axesKey {
			continue
		}
		if _, ok := b.system.Entities.ByPlural(key); !ok {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		return nil, newError([]string{unexpected[0]},
			"Some entities in the situation are not defined in the loaded model. "+
				"These entities are not found: %s. The defined entities are: %s.",
			strings.Join(unexpected, ", "), strings.Join(b.system.Entities.Plurals(), ", "))
	}

	personKind := b.system.Entities.Person()
	personsRaw, ok := obj.Get(personKind.Plural)
	if !ok || isEmptyValue(personsRaw) {
		return nil, newError([]string{personKind.Plural},
			"No %s found. At least one %s must be defined to run a simulation.",
			personKind.Plural, personKind.Key)
	}

	personIDs, err := b.AddPersonEntity(personsRaw)
	if err != nil {
		return nil, err
	}
	for _, kind := range b.system.Entities.GroupKinds() {
		// A missing group kind is a shape error on this path; only the
		// variables-only path synthesizes default populations.
		instancesRaw, _ := obj.Get(kind.Plural)
		if err := b.AddGroupEntity(personIDs, kind, instancesRaw); err != nil {
			return nil, err
		}
	}

	if hasAxes {
		if err := b.addAxesFromDocument(axesRaw); err != nil {
			return nil, err
		}
		if err := b.ExpandAxes(); err != nil {
			return nil, err
		}
	}

	if err := b.FinalizeVariablesInit(sim.Persons); err != nil {
		return nil, err
	}
	for _, kind := range b.system.Entities.GroupKinds() {
		if err := b.FinalizeVariablesInit(sim.Population(kind.Key)); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

// BuildFromVariables builds from a document keyed by variable names over
// an implicit default population: one person, one instance of every group
// kind. Values keyed by period commit per period; bare values need a
// configured default period.
func (b *Builder) BuildFromVariables(doc any) (*simulation.Simulation, error) {
	obj, err := checkObject(doc, []string{"error"})
	if err != nil {
		return nil, err
	}
	sim, err := b.BuildDefaultSimulation(personCount(obj))
	if err != nil {
		return nil, err
	}

	for _, name := range obj.Keys() {
		raw, _ := obj.Get(name)
		periodValues, ok := raw.(*Object)
		if !ok {
			if b.defaultPeriod == nil {
				return nil, newError([]string{name}, "Can't deal with type: expected object. "+
					"Input variables should be set for specific periods. For instance: "+
					"{'salary': {'2017-01': 2000, '2017-02': 2500}}, or {'birth_date': {'ETERNITY': '1980-01-01'}}.")
			}
			periodValues = NewObject().Set(b.defaultPeriod.Key(), raw)
		}
		for _, periodKey := range periodValues.Keys() {
			value, _ := periodValues.Get(periodKey)
			if err := sim.SetInput(name, periodKey, value); err != nil {
				return nil, wrapInputError(err, []string{name, periodKey})
			}
		}
	}
	return sim, nil
}

// BuildDefaultSimulation creates count persons "0".."count-1", each the
// sole member of its own instance of every group kind, holding the kind's
// first declared role.
func (b *Builder) BuildDefaultSimulation(count int) (*simulation.Simulation, error) {
	if count < 1 {
		return nil, newError(nil, "a default simulation needs at least one person, got %d", count)
	}
	sim := simulation.New(b.system)
	ids := make([]string, count)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	for _, kind := range b.system.Entities.Kinds() {
		pop := sim.Population(kind.Key)
		pop.Count = count
		pop.IDs = ids
		if kind.IsPerson {
			continue
		}
		members := make([]int, count)
		roles := make([]*entity.Role, count)
		first := kind.FlattenedRoles()[0]
		for i := range members {
			members[i] = i
			roles[i] = first
		}
		pop.MembersEntityID = members
		pop.MembersRole = roles
	}
	return sim, nil
}

// addAxesFromDocument parses the document's axis groups: the first group
// holds parallel axes, each further group is perpendicular to all previous
// ones.
func (b *Builder) addAxesFromDocument(raw any) error {
	groups, ok := raw.([]any)
	if !ok {
		return newError([]string{axesKey}, "Invalid type: must be of type 'Array'.")
	}
	for gi, g := range groups {
		groupPath := []string{axesKey, strconv.Itoa(gi)}
		list, ok := g.([]any)
		if !ok {
			return newError(groupPath, "Invalid type: must be of type 'Array'.")
		}
		for ai, a := range list {
			axisPath := append(groupPath, strconv.Itoa(ai))
			obj, ok := a.(*Object)
			if !ok {
				return newError(axisPath, "Invalid type: must be of type 'Object'.")
			}
			ax, err := axisFromObject(obj, axisPath)
			if err != nil {
				return err
			}
			switch {
			case gi == 0:
				b.AddParallelAxis(ax)
			case ai == 0:
				b.AddPerpendicularAxis(ax)
			default:
				b.axes[len(b.axes)-1] = append(b.axes[len(b.axes)-1], ax)
			}
		}
	}
	return nil
}

// axisFromObject decodes one axis descriptor. Name, count, min and max are
// mandatory; period and index are optional. A bare-year period decodes
// from YAML as an integer and is accepted.
func axisFromObject(obj *Object, path []string) (Axis, error) {
	var ax Axis

	nameRaw, ok := obj.Get("name")
	name, isStr := nameRaw.(string)
	if !ok || !isStr || name == "" {
		return ax, newError(path, "axis field %q is required and must be a string", "name")
	}
	ax.Name = name

	count, ok := asInt(mustGet(obj, "count"))
	if !ok {
		return ax, newError(path, "axis field %q is required and must be an integer", "count")
	}
	ax.Count = count

	minV, ok := asFloat(mustGet(obj, "min"))
	if !ok {
		return ax, newError(path, "axis field %q is required and must be a number", "min")
	}
	ax.Min = minV

	maxV, ok := asFloat(mustGet(obj, "max"))
	if !ok {
		return ax, newError(path, "axis field %q is required and must be a number", "max")
	}
	ax.Max = maxV

	if raw, present := obj.Get("period"); present && raw != nil {
		switch p := raw.(type) {
		case string:
			ax.Period = p
		case int:
			ax.Period = strconv.Itoa(p)
		case int64:
			ax.Period = strconv.FormatInt(p, 10)
		default:
			return ax, newError(path, "axis field %q must be a period string or a year", "period")
		}
	}
	if raw, present := obj.Get("index"); present && raw != nil {
		index, ok := asInt(raw)
		if !ok {
			return ax, newError(path, "axis field %q must be an integer", "index")
		}
		ax.Index = index
	}
	return ax, nil
}

// personCount infers the population size of a variables-only document
// from its first value only: unwrap one period level, a sequence counts
// its elements, anything else means one person.
func personCount(obj *Object) int {
	if obj.Len() == 0 {
		return 1
	}
	first := mustGet(obj, obj.Keys()[0])
	if periodValues, ok := first.(*Object); ok {
		if periodValues.Len() == 0 {
			return 1
		}
		first = mustGet(periodValues, periodValues.Keys()[0])
	}
	if seq, ok := first.([]any); ok {
		return len(seq)
	}
	return 1
}

// wrapInputError keeps an already-located build error, and pins anything
// else to the given document path.
func wrapInputError(err error, path []string) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return newError(path, "%s", err.Error())
}

// isEmptyValue reports whether a document value is nil or an Object with
// no keys.
func isEmptyValue(raw any) bool {
	if raw == nil {
		return true
	}
	obj, ok := raw.(*Object)
	return ok && obj.Len() == 0
}

// mustGet reads a key ignoring presence; absent keys read as nil.
func mustGet(obj *Object, key string) any {
	v, _ := obj.Get(key)
	return v
}

// asInt accepts YAML integer shapes, plus whole floats.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// asFloat accepts YAML numeric shapes.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
