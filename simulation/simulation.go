package simulation

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/variable"
)

// ErrUnknownVariableEntity indicates a variable declared for an entity
// kind the entity registry does not know.
var ErrUnknownVariableEntity = errors.New("simulation: variable declared for unknown entity kind")

// System pairs the entity-kind registry with the variable registry.
type System struct {
	Entities  *entity.Registry
	Variables *variable.Registry
}

// NewSystem validates that every variable's owning kind exists.
func NewSystem(entities *entity.Registry, variables *variable.Registry) (*System, error) {
	for _, name := range variables.Names() {
		v, err := variables.Get(name)
		if err != nil {
			return nil, err
		}
		if _, ok := entities.BySingular(v.Entity); !ok {
			return nil, fmt.Errorf("%w: %q declared for %q", ErrUnknownVariableEntity, name, v.Entity)
		}
	}
	return &System{Entities: entities, Variables: variables}, nil
}

// Simulation is the populated object a build hands off: one Population per
// entity kind plus committed variable values.
type Simulation struct {
	System      *System
	Persons     *Population
	populations map[string]*Population
}

// New creates an empty simulation with one population per declared kind.
func New(sys *System) *Simulation {
	s := &Simulation{System: sys, populations: make(map[string]*Population)}
	for _, kind := range sys.Entities.Kinds() {
		pop := newPopulation(kind, sys.Variables)
		s.populations[kind.Key] = pop
		if kind.IsPerson {
			s.Persons = pop
		}
	}
	return s
}

// Population returns the population for a kind key ("person", "household").
func (s *Simulation) Population(kindKey string) *Population {
	return s.populations[kindKey]
}

// SetInput commits a raw value for (variable, period) directly, bypassing
// the build buffer: a scalar broadcasts to every instance, a sequence maps
// one value per instance. Used by the variables-only build path.
func (s *Simulation) SetInput(name, periodKey string, raw any) error {
	if raw == nil {
		return nil
	}
	v, err := s.System.Variables.Get(name)
	if err != nil {
		return err
	}
	p, err := period.Parse(periodKey)
	if err != nil {
		return err
	}
	pop := s.populations[v.Entity]

	arr := v.DefaultArray(pop.Count)
	if seq, ok := raw.([]any); ok {
		if len(seq) != pop.Count {
			return fmt.Errorf("%w: %s at %s: got %d values, population has %d",
				ErrBadArraySize, name, periodKey, len(seq), pop.Count)
		}
		for i, item := range seq {
			if item == nil {
				continue
			}
			val, err := v.CheckValue(item)
			if err != nil {
				return err
			}
			arr[i] = val
		}
	} else {
		val, err := v.CheckValue(raw)
		if err != nil {
			return err
		}
		for i := range arr {
			arr[i] = val
		}
	}

	h, err := pop.Holder(name)
	if err != nil {
		return err
	}
	return h.SetInput(p, arr)
}

// Value returns the committed array for (variable, period), resolving the
// owning population itself. Missing values fail with ErrValueNotSet.
func (s *Simulation) Value(name, periodKey string) ([]cty.Value, error) {
	v, err := s.System.Variables.Get(name)
	if err != nil {
		return nil, err
	}
	p, err := period.Parse(periodKey)
	if err != nil {
		return nil, err
	}
	h, err := s.populations[v.Entity].Holder(name)
	if err != nil {
		return nil, err
	}
	arr, ok := h.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s at %s", ErrValueNotSet, name, periodKey)
	}
	return arr, nil
}
