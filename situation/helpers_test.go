package situation_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/simulation"
	"github.com/katalvlaran/simpop/variable"
)

// testSystem declares the model every test builds against: persons plus a
// household kind with two parents (positional subroles) and children.
func testSystem(t testing.TB) *simulation.System {
	t.Helper()
	kinds, err := entity.NewRegistry(
		&entity.Kind{Key: "person", Plural: "persons", IsPerson: true},
		&entity.Kind{Key: "household", Plural: "households", Roles: []*entity.Role{
			{Key: "parent", Plural: "parents", Max: 2, Subroles: []*entity.Role{
				{Key: "first_parent"}, {Key: "second_parent"},
			}},
			{Key: "child", Plural: "children"},
		}},
	)
	require.NoError(t, err)
	vars, err := variable.NewRegistry(
		&variable.Variable{Name: "salary", Entity: "person", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth, Divisible: true},
		&variable.Variable{Name: "age", Entity: "person", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth},
		&variable.Variable{Name: "birth_date", Entity: "person", Type: cty.String,
			DefinitionPeriod: period.UnitEternity},
		&variable.Variable{Name: "rent", Entity: "household", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth, Divisible: true},
		&variable.Variable{Name: "housing_tax", Entity: "household", Type: cty.Number,
			DefinitionPeriod: period.UnitYear},
	)
	require.NoError(t, err)
	sys, err := simulation.NewSystem(kinds, vars)
	require.NoError(t, err)
	return sys
}

func number(t *testing.T, v cty.Value) float64 {
	t.Helper()
	f, _ := v.AsBigFloat().Float64()
	return f
}

func numbers(t *testing.T, arr []cty.Value) []float64 {
	t.Helper()
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = number(t, v)
	}
	return out
}

func roleKeys(roles []*entity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		if r != nil {
			out[i] = r.Key
		}
	}
	return out
}
