package entity

import "fmt"

// Role is one named slot a person occupies within a group instance.
// A role with Subroles assigns them positionally: the first person listed
// under the role gets the first subrole, and so on. Max caps how many
// persons one instance may hold in this role (0 means unbounded).
type Role struct {
	Key      string
	Plural   string
	Max      int
	Subroles []*Role
}

// Name returns the field name the role answers to in an instance
// description: the plural name when declared, the key otherwise.
func (r *Role) Name() string {
	if r.Plural != "" {
		return r.Plural
	}
	return r.Key
}

// Kind is a typed descriptor for one entity kind. Key doubles as the
// singular name ("household"); Plural names the canonical document key
// ("households"). Roles is empty for the person kind.
type Kind struct {
	Key      string
	Plural   string
	IsPerson bool
	Roles    []*Role

	flattened []*Role
}

// FlattenedRoles returns the roles in declaration order with subroles
// expanded in place of their parent. The position in this sequence is the
// legacy numeric role order used for default assignments.
func (k *Kind) FlattenedRoles() []*Role {
	if k.flattened == nil {
		for _, role := range k.Roles {
			if len(role.Subroles) > 0 {
				k.flattened = append(k.flattened, role.Subroles...)
			} else {
				k.flattened = append(k.flattened, role)
			}
		}
	}
	return k.flattened
}

// Registry holds the model's kinds and resolves them by name.
type Registry struct {
	kinds      []*Kind
	byPlural   map[string]*Kind
	bySingular map[string]*Kind
	person     *Kind
}

// NewRegistry validates kinds and builds the lookup tables: exactly one
// person kind, unique plural and singular names, at least one role per
// group kind.
func NewRegistry(kinds ...*Kind) (*Registry, error) {
	r := &Registry{
		kinds:      kinds,
		byPlural:   make(map[string]*Kind, len(kinds)),
		bySingular: make(map[string]*Kind, len(kinds)),
	}
	for _, k := range kinds {
		if _, dup := r.byPlural[k.Plural]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKindName, k.Plural)
		}
		if _, dup := r.bySingular[k.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKindName, k.Key)
		}
		r.byPlural[k.Plural] = k
		r.bySingular[k.Key] = k
		if k.IsPerson {
			if r.person != nil {
				return nil, fmt.Errorf("%w: %q and %q", ErrMultiplePersonKinds, r.person.Key, k.Key)
			}
			r.person = k
		} else if len(k.Roles) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoRoles, k.Key)
		}
	}
	if r.person == nil {
		return nil, ErrNoPersonKind
	}
	return r, nil
}

// Person returns the registry's single person kind.
func (r *Registry) Person() *Kind { return r.person }

// Kinds returns all kinds in declaration order.
func (r *Registry) Kinds() []*Kind { return r.kinds }

// GroupKinds returns the non-person kinds in declaration order.
func (r *Registry) GroupKinds() []*Kind {
	groups := make([]*Kind, 0, len(r.kinds)-1)
	for _, k := range r.kinds {
		if !k.IsPerson {
			groups = append(groups, k)
		}
	}
	return groups
}

// ByPlural resolves a kind by its plural name.
func (r *Registry) ByPlural(name string) (*Kind, bool) {
	k, ok := r.byPlural[name]
	return k, ok
}

// BySingular resolves a kind by its singular name.
func (r *Registry) BySingular(name string) (*Kind, bool) {
	k, ok := r.bySingular[name]
	return k, ok
}

// Plurals returns every kind's plural name in declaration order.
func (r *Registry) Plurals() []string {
	names := make([]string, len(r.kinds))
	for i, k := range r.kinds {
		names[i] = k.Plural
	}
	return names
}
