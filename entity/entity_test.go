package entity_test

import (
	"testing"

	"github.com/katalvlaran/simpop/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personKind() *entity.Kind {
	return &entity.Kind{Key: "person", Plural: "persons", IsPerson: true}
}

func householdKind() *entity.Kind {
	return &entity.Kind{
		Key:    "household",
		Plural: "households",
		Roles: []*entity.Role{
			{Key: "parent", Plural: "parents", Max: 2, Subroles: []*entity.Role{
				{Key: "first_parent"}, {Key: "second_parent"},
			}},
			{Key: "child", Plural: "children"},
		},
	}
}

// TestNewRegistry_Lookups covers plural/singular resolution and ordering.
func TestNewRegistry_Lookups(t *testing.T) {
	reg, err := entity.NewRegistry(personKind(), householdKind())
	require.NoError(t, err)

	assert.Equal(t, "person", reg.Person().Key)
	assert.Equal(t, []string{"persons", "households"}, reg.Plurals())
	require.Len(t, reg.GroupKinds(), 1)
	assert.Equal(t, "household", reg.GroupKinds()[0].Key)

	k, ok := reg.ByPlural("households")
	require.True(t, ok)
	assert.Equal(t, "household", k.Key)
	k, ok = reg.BySingular("household")
	require.True(t, ok)
	assert.Equal(t, "households", k.Plural)
	_, ok = reg.ByPlural("families")
	assert.False(t, ok)
}

// TestNewRegistry_Validation covers the construction-time invariants.
func TestNewRegistry_Validation(t *testing.T) {
	_, err := entity.NewRegistry(householdKind())
	assert.ErrorIs(t, err, entity.ErrNoPersonKind, "missing person kind")

	_, err = entity.NewRegistry(personKind(), personKind())
	assert.ErrorIs(t, err, entity.ErrDuplicateKindName, "duplicated names")

	_, err = entity.NewRegistry(personKind(), &entity.Kind{Key: "household", Plural: "households"})
	assert.ErrorIs(t, err, entity.ErrNoRoles, "group kind without roles")

	_, err = entity.NewRegistry(personKind(),
		&entity.Kind{Key: "adult", Plural: "adults", IsPerson: true})
	assert.ErrorIs(t, err, entity.ErrMultiplePersonKinds, "second person kind")
	assert.ErrorContains(t, err, "adult")
}

// TestFlattenedRoles verifies subrole expansion in declaration order.
func TestFlattenedRoles(t *testing.T) {
	hh := householdKind()
	flat := hh.FlattenedRoles()
	require.Len(t, flat, 3)
	assert.Equal(t, "first_parent", flat[0].Key)
	assert.Equal(t, "second_parent", flat[1].Key)
	assert.Equal(t, "child", flat[2].Key)

	assert.Equal(t, "children", hh.Roles[1].Name(), "plural preferred")
	assert.Equal(t, "first_parent", flat[0].Name(), "key when no plural")
}
