package simulation

import (
	"fmt"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/variable"
)

// Population is the per-kind output state of a build: final count, ordered
// instance ids and, for group kinds, the person-indexed membership and role
// arrays. MembersEntityID[i] is the group instance index person i belongs
// to; MembersRole[i] is the role it occupies there. Both are empty for the
// person kind.
type Population struct {
	Kind            *entity.Kind
	Count           int
	IDs             []string
	MembersEntityID []int
	MembersRole     []*entity.Role

	vars    *variable.Registry
	holders map[string]*Holder
}

func newPopulation(kind *entity.Kind, vars *variable.Registry) *Population {
	p := &Population{
		Kind:    kind,
		vars:    vars,
		holders: make(map[string]*Holder),
	}
	for _, name := range vars.Names() {
		if v, err := vars.Get(name); err == nil && v.Entity == kind.Key {
			p.holders[name] = newHolder(v, p)
		}
	}
	return p
}

// Holder resolves the value holder for one of this kind's variables.
// A variable owned by another kind fails with ErrWrongEntity; an unknown
// name propagates variable.ErrVariableNotFound.
func (p *Population) Holder(name string) (*Holder, error) {
	if h, ok := p.holders[name]; ok {
		return h, nil
	}
	v, err := p.vars.Get(name)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q is defined for %q, not %q",
		ErrWrongEntity, name, v.Entity, p.Kind.Key)
}
