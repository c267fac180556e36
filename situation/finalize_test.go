package situation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simpop/simulation"
	"github.com/katalvlaran/simpop/situation"
)

// TestFinalize_StampsPopulation copies the recorded shape onto the
// population.
func TestFinalize_StampsPopulation(t *testing.T) {
	sys := testSystem(t)
	b := situation.NewBuilder(sys)
	households, _ := sys.Entities.ByPlural("households")

	ids, err := b.AddPersonEntity(persons("Alicia", "Tom"))
	require.NoError(t, err)
	doc := situation.NewObject().
		Set("h1", situation.NewObject().
			Set("parents", []any{"Alicia"}).
			Set("children", []any{"Tom"}))
	require.NoError(t, b.AddGroupEntity(ids, households, doc))

	sim := simulation.New(sys)
	require.NoError(t, b.FinalizeVariablesInit(sim.Persons))
	require.NoError(t, b.FinalizeVariablesInit(sim.Population("household")))

	assert.Equal(t, 2, sim.Persons.Count)
	assert.Equal(t, []string{"Alicia", "Tom"}, sim.Persons.IDs)
	hh := sim.Population("household")
	assert.Equal(t, 1, hh.Count)
	assert.Equal(t, []int{0, 0}, hh.MembersEntityID)
	assert.Equal(t, []string{"first_parent", "child"}, roleKeys(hh.MembersRole))
}

// TestFinalize_MonthsBeforeYears commits finer periods first, so a yearly
// total splits around the month that was given explicitly.
func TestFinalize_MonthsBeforeYears(t *testing.T) {
	sys := testSystem(t)
	b := situation.NewBuilder(sys)

	doc := situation.NewObject().
		Set("Alicia", situation.NewObject().
			Set("salary", situation.NewObject().
				Set("2024", 1200).
				Set("2024-01", 650)))
	_, err := b.AddPersonEntity(doc)
	require.NoError(t, err)

	sim := simulation.New(sys)
	require.NoError(t, b.FinalizeVariablesInit(sim.Persons))

	jan, err := sim.Value("salary", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 650.0, number(t, jan[0]), "explicit month survives the yearly split")
	feb, err := sim.Value("salary", "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 50.0, number(t, feb[0]), "(1200-650)/11 per missing month")
}

// TestFinalize_SkipsOtherKinds leaves foreign-kind buffers for their own
// finalize pass.
func TestFinalize_SkipsOtherKinds(t *testing.T) {
	sys := testSystem(t)
	b := situation.NewBuilder(sys)
	households, _ := sys.Entities.ByPlural("households")

	ids, err := b.AddPersonEntity(persons("Alicia"))
	require.NoError(t, err)
	doc := situation.NewObject().
		Set("h1", situation.NewObject().
			Set("parents", []any{"Alicia"}).
			Set("rent", situation.NewObject().Set("2024-01", 800)))
	require.NoError(t, b.AddGroupEntity(ids, households, doc))

	sim := simulation.New(sys)
	require.NoError(t, b.FinalizeVariablesInit(sim.Persons), "rent is not a person variable")

	_, err = sim.Value("rent", "2024-01")
	assert.Error(t, err, "not committed by the persons pass")

	require.NoError(t, b.FinalizeVariablesInit(sim.Population("household")))
	arr, err := sim.Value("rent", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 800.0, number(t, arr[0]))
}

// TestFinalize_LocatesPeriodMismatch maps a commit-time mismatch back to
// the document path that fed the offending (variable, period).
func TestFinalize_LocatesPeriodMismatch(t *testing.T) {
	sys := testSystem(t)
	b := situation.NewBuilder(sys)
	households, _ := sys.Entities.ByPlural("households")

	ids, err := b.AddPersonEntity(persons("Alicia"))
	require.NoError(t, err)
	doc := situation.NewObject().
		Set("h1", situation.NewObject().
			Set("parents", []any{"Alicia"}).
			Set("housing_tax", situation.NewObject().Set("2024-01", 120)))
	require.NoError(t, b.AddGroupEntity(ids, households, doc))

	sim := simulation.New(sys)
	require.NoError(t, b.FinalizeVariablesInit(sim.Persons))
	err = b.FinalizeVariablesInit(sim.Population("household"))

	var se *situation.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"households", "h1", "housing_tax", "2024-01"}, se.Path)
	assert.Contains(t, se.Message, "housing_tax")
}
