package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/simulation"
	"github.com/katalvlaran/simpop/variable"
)

func testSystem(t *testing.T) *simulation.System {
	t.Helper()
	kinds, err := entity.NewRegistry(
		&entity.Kind{Key: "person", Plural: "persons", IsPerson: true},
		&entity.Kind{Key: "household", Plural: "households", Roles: []*entity.Role{
			{Key: "parent", Plural: "parents", Max: 2},
			{Key: "child", Plural: "children"},
		}},
	)
	require.NoError(t, err)
	vars, err := variable.NewRegistry(
		&variable.Variable{Name: "salary", Entity: "person", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth, Divisible: true},
		&variable.Variable{Name: "disabled", Entity: "person", Type: cty.Bool,
			DefinitionPeriod: period.UnitMonth},
		&variable.Variable{Name: "rent", Entity: "household", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth, Divisible: true},
		&variable.Variable{Name: "income_tax", Entity: "person", Type: cty.Number,
			DefinitionPeriod: period.UnitYear},
		&variable.Variable{Name: "birth", Entity: "person", Type: cty.String,
			DefinitionPeriod: period.UnitEternity},
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

// TestNewSystem_UnknownEntity rejects variables owned by undeclared kinds.
func TestNewSystem_UnknownEntity(t *testing.T) {
	kinds, err := entity.NewRegistry(
		&entity.Kind{Key: "person", Plural: "persons", IsPerson: true},
	)
	require.NoError(t, err)
	vars, err := variable.NewRegistry(
		&variable.Variable{Name: "rent", Entity: "household", Type: cty.Number,
			DefinitionPeriod: period.UnitMonth},
	)
	require.NoError(t, err)

	_, err = simulation.NewSystem(kinds, vars)
	assert.ErrorIs(t, err, simulation.ErrUnknownVariableEntity)
}

// TestPopulation_Holder distinguishes wrong-entity from unknown-variable.
func TestPopulation_Holder(t *testing.T) {
	s := simulation.New(testSystem(t))

	h, err := s.Persons.Holder("salary")
	require.NoError(t, err)
	assert.Equal(t, "salary", h.Variable().Name)

	_, err = s.Population("household").Holder("salary")
	assert.ErrorIs(t, err, simulation.ErrWrongEntity)

	_, err = s.Persons.Holder("nonexistent")
	assert.ErrorIs(t, err, variable.ErrVariableNotFound)
}

// TestHolder_SetInput_ExactPeriod stores and overwrites at definition grain.
func TestHolder_SetInput_ExactPeriod(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 2

	h, err := s.Persons.Holder("salary")
	require.NoError(t, err)

	jan := period.MustParse("2024-01")
	require.NoError(t, h.SetInput(jan, []cty.Value{cty.NumberIntVal(100), cty.NumberIntVal(200)}))
	require.NoError(t, h.SetInput(jan, []cty.Value{cty.NumberIntVal(150), cty.NumberIntVal(250)}))

	arr, ok := h.Get(jan)
	require.True(t, ok)
	assert.Equal(t, 150.0, number(t, arr[0]), "last write wins")
	assert.Equal(t, 250.0, number(t, arr[1]))

	err = h.SetInput(jan, []cty.Value{cty.Zero})
	assert.ErrorIs(t, err, simulation.ErrBadArraySize)
}

// TestHolder_SetInput_DivideAcrossMonths checks the remainder split of a
// yearly input onto a monthly divisible variable: the already-known month
// keeps its value, the missing ones share what is left.
func TestHolder_SetInput_DivideAcrossMonths(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 1

	h, err := s.Persons.Holder("salary")
	require.NoError(t, err)

	require.NoError(t, h.SetInput(period.MustParse("2024-01"), []cty.Value{cty.NumberIntVal(650)}))
	require.NoError(t, h.SetInput(period.MustParse("2024"), []cty.Value{cty.NumberIntVal(1200)}))

	jan, _ := h.Get(period.MustParse("2024-01"))
	assert.Equal(t, 650.0, number(t, jan[0]), "finer fact is kept")
	feb, ok := h.Get(period.MustParse("2024-02"))
	require.True(t, ok)
	assert.Equal(t, 50.0, number(t, feb[0]), "(1200-650)/11 per missing month")
	dec, _ := h.Get(period.MustParse("2024-12"))
	assert.Equal(t, 50.0, number(t, dec[0]))
}

// TestHolder_SetInput_DispatchAcrossMonths checks that non-divisible
// variables dispatch the same value onto each missing month.
func TestHolder_SetInput_DispatchAcrossMonths(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 1

	h, err := s.Persons.Holder("disabled")
	require.NoError(t, err)

	require.NoError(t, h.SetInput(period.MustParse("2024-03"), []cty.Value{cty.False}))
	require.NoError(t, h.SetInput(period.MustParse("2024"), []cty.Value{cty.True}))

	mar, _ := h.Get(period.MustParse("2024-03"))
	assert.True(t, cty.False.RawEquals(mar[0]), "known month kept")
	apr, _ := h.Get(period.MustParse("2024-04"))
	assert.True(t, cty.True.RawEquals(apr[0]), "missing month dispatched")
}

// TestHolder_SetInput_PeriodMismatch rejects inputs finer than the
// definition period, and eternity inputs on dated variables.
func TestHolder_SetInput_PeriodMismatch(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 1

	h, err := s.Persons.Holder("income_tax")
	require.NoError(t, err)

	err = h.SetInput(period.MustParse("2024-01"), []cty.Value{cty.Zero})
	var mismatch *simulation.PeriodMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "income_tax", mismatch.Variable)
	assert.Equal(t, "2024-01", mismatch.Period.Key())

	hs, err := s.Persons.Holder("salary")
	require.NoError(t, err)
	err = hs.SetInput(period.Eternity, []cty.Value{cty.Zero})
	assert.ErrorAs(t, err, &mismatch, "eternity onto a monthly variable")
}

// TestHolder_SetInput_Eternity stores once regardless of input period.
func TestHolder_SetInput_Eternity(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 1

	h, err := s.Persons.Holder("birth")
	require.NoError(t, err)
	require.NoError(t, h.SetInput(period.Eternity, []cty.Value{cty.StringVal("1980-01-01")}))

	arr, ok := h.Get(period.MustParse("2024-05"))
	require.True(t, ok, "eternity values answer any period")
	assert.True(t, cty.StringVal("1980-01-01").RawEquals(arr[0]))
}

// TestSimulation_SetInput covers broadcast and per-instance sequences.
func TestSimulation_SetInput(t *testing.T) {
	s := simulation.New(testSystem(t))
	s.Persons.Count = 2
	s.Persons.IDs = []string{"0", "1"}

	require.NoError(t, s.SetInput("salary", "2024-01", 2000))
	arr, err := s.Value("salary", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, number(t, arr[0]), "scalar broadcasts")
	assert.Equal(t, 2000.0, number(t, arr[1]))

	require.NoError(t, s.SetInput("salary", "2024-02", []any{1000, 3000}))
	arr, err = s.Value("salary", "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, number(t, arr[0]))
	assert.Equal(t, 3000.0, number(t, arr[1]))

	err = s.SetInput("salary", "2024-03", []any{1000})
	assert.ErrorIs(t, err, simulation.ErrBadArraySize, "sequence length must match count")

	err = s.SetInput("salary", "20x4", 1)
	assert.ErrorIs(t, err, period.ErrMalformed)

	err = s.SetInput("salary", "2024-04", "not a number")
	assert.ErrorIs(t, err, variable.ErrBadValue)

	_, err = s.Value("salary", "2024-12")
	assert.ErrorIs(t, err, simulation.ErrValueNotSet)
}
