package variable

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/katalvlaran/simpop/period"
)

// Variable declares one input variable of the model.
//
// Entity is the key of the owning entity kind. DefinitionPeriod is the
// grain values are natively stored at (eternity, year or month). Divisible
// marks numeric flow variables (salary) whose coarser inputs are split
// across the definition periods they span; non-divisible variables
// (a status, a stock) dispatch the same value instead.
type Variable struct {
	Name             string
	Entity           string
	Type             cty.Type
	Default          cty.Value
	DefinitionPeriod period.Unit
	Divisible        bool
}

// DefaultValue returns the declared default, or the type's zero value
// (0, "", false) when none was declared.
func (v *Variable) DefaultValue() cty.Value {
	if v.Default != cty.NilVal {
		return v.Default
	}
	switch v.Type {
	case cty.Number:
		return cty.Zero
	case cty.Bool:
		return cty.False
	case cty.String:
		return cty.StringVal("")
	default:
		return cty.NullVal(v.Type)
	}
}

// DefaultArray builds a dense array of n slots filled with the default
// value — the factory backing every buffered input array.
func (v *Variable) DefaultArray(n int) []cty.Value {
	arr := make([]cty.Value, n)
	def := v.DefaultValue()
	for i := range arr {
		arr[i] = def
	}
	return arr
}

// CheckValue coerces a raw decoded value into the variable's canonical
// cty.Value. Failures wrap ErrBadValue with the variable name and the
// conversion diagnostic.
func (v *Variable) CheckValue(raw any) (cty.Value, error) {
	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s: %v", ErrBadValue, v.Name, err)
	}
	val, err := gocty.ToCtyValue(raw, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s: %v", ErrBadValue, v.Name, err)
	}
	conv, err := convert.Convert(val, v.Type)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s: %v", ErrBadValue, v.Name, err)
	}
	return conv, nil
}

// Registry resolves variables by name.
type Registry struct {
	vars  map[string]*Variable
	names []string
}

// NewRegistry validates the declarations: unique non-empty names, a
// concrete type, an owning entity, and a definition period of month, year
// or eternity (day-grained variables are not supported).
func NewRegistry(vars ...*Variable) (*Registry, error) {
	r := &Registry{vars: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		if v.Name == "" || v.Entity == "" || v.Type == cty.NilType {
			return nil, fmt.Errorf("%w: %q needs a name, an entity and a type", ErrBadVariable, v.Name)
		}
		switch v.DefinitionPeriod {
		case period.UnitMonth, period.UnitYear, period.UnitEternity:
		default:
			return nil, fmt.Errorf("%w: %q: definition period must be month, year or eternity", ErrBadVariable, v.Name)
		}
		if _, dup := r.vars[v.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrBadVariable, v.Name)
		}
		r.vars[v.Name] = v
		r.names = append(r.names, v.Name)
	}
	return r, nil
}

// Get resolves a variable by name, or fails with ErrVariableNotFound.
func (r *Registry) Get(name string) (*Variable, error) {
	v, ok := r.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVariableNotFound, name)
	}
	return v, nil
}

// Names returns the declared names in declaration order.
func (r *Registry) Names() []string { return r.names }
