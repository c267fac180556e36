package situation

import (
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/simpop/entity"
)

// AddPersonEntity records the person population described by instances —
// ordered ids, count — and ingests every instance's variable values.
// Returns the ordered id sequence.
func (b *Builder) AddPersonEntity(instances any) ([]string, error) {
	kind := b.system.Entities.Person()
	obj, err := checkObject(instances, []string{kind.Plural})
	if err != nil {
		return nil, err
	}

	ids := slices.Clone(obj.Keys())
	b.entityIDs[kind.Plural] = ids
	b.entityCounts[kind.Plural] = len(ids)

	for _, id := range obj.Keys() {
		raw, _ := obj.Get(id)
		fields, err := checkObject(raw, []string{kind.Plural, id})
		if err != nil {
			return nil, err
		}
		if err := b.initVariableValues(kind, fields, id); err != nil {
			return nil, err
		}
	}
	return b.getIDs(kind.Plural), nil
}

// AddGroupEntity records all instances of one group kind: role lists are
// validated against the person population (every person in exactly one
// role of exactly one instance), memberships and roles are materialized as
// person-indexed arrays, and the remaining fields are ingested as variable
// values.
func (b *Builder) AddGroupEntity(personIDs []string, kind *entity.Kind, instances any) error {
	personsPlural := b.system.Entities.Person().Plural
	obj, err := checkObject(instances, []string{kind.Plural})
	if err != nil {
		return err
	}

	ids := slices.Clone(obj.Keys())
	b.entityIDs[kind.Plural] = ids
	b.entityCounts[kind.Plural] = len(ids)

	personIndex := make(map[string]int, len(personIDs))
	toAllocate := make(map[string]struct{}, len(personIDs))
	for i, id := range personIDs {
		personIndex[id] = i
		toAllocate[id] = struct{}{}
	}

	memberships := make([]int, len(personIDs))
	roleArray := make([]*entity.Role, len(personIDs))

	roleNames := make(map[string]bool, len(kind.Roles))
	for _, role := range kind.Roles {
		roleNames[role.Name()] = true
	}

	for entityIndex, instanceID := range ids {
		raw, _ := obj.Get(instanceID)
		instObj, err := checkObject(raw, []string{kind.Plural, instanceID})
		if err != nil {
			return err
		}

		// Role lists, validated and allocated in declaration order.
		lists := make(map[string][]string, len(kind.Roles))
		for _, role := range kind.Roles {
			rawList, _ := instObj.Get(role.Name())
			seq, ok := toStrictSyntax(rawList)
			if !ok {
				return newError([]string{kind.Plural, instanceID, role.Name()},
					"Invalid type: must be of type 'Array'.")
			}
			members := make([]string, len(seq))
			for index, item := range seq {
				pid, ok := item.(string)
				if !ok {
					return newError([]string{kind.Plural, instanceID, role.Name(), strconv.Itoa(index)},
						"Invalid type: must be of type 'String'.")
				}
				if _, known := personIndex[pid]; !known {
					return newError([]string{kind.Plural, instanceID, role.Name()},
						"Unexpected value: %s. %s has been declared in %s %s, but has not been declared in %s.",
						pid, pid, instanceID, role.Name(), personsPlural)
				}
				if _, free := toAllocate[pid]; !free {
					return newError([]string{kind.Plural, instanceID, role.Name()},
						"%s has been declared more than once in %s", pid, kind.Plural)
				}
				delete(toAllocate, pid)
				members[index] = pid
			}
			lists[role.Name()] = members
		}

		// Role assignment: subroles are taken positionally, a role without
		// subroles repeats for every listed person.
		for _, role := range kind.Roles {
			for j, pid := range lists[role.Name()] {
				assigned := role
				if len(role.Subroles) > 0 {
					if j >= len(role.Subroles) {
						return newError([]string{kind.Plural, instanceID, role.Name()},
							"At most %d %s are allowed per %s.", len(role.Subroles), role.Name(), kind.Key)
					}
					assigned = role.Subroles[j]
				}
				pi := personIndex[pid]
				memberships[pi] = entityIndex
				roleArray[pi] = assigned
			}
		}

		// Whatever is not a role list is a variable field.
		fields := NewObject()
		for _, key := range instObj.Keys() {
			if !roleNames[key] {
				v, _ := instObj.Get(key)
				fields.Set(key, v)
			}
		}
		if err := b.initVariableValues(kind, fields, instanceID); err != nil {
			return err
		}
	}

	b.memberships[kind.Plural] = memberships
	b.roles[kind.Plural] = roleArray

	if len(toAllocate) > 0 {
		leftover := make([]string, 0, len(toAllocate))
		for name := range toAllocate {
			leftover = append(leftover, name)
		}
		slices.Sort(leftover)
		return newError([]string{kind.Plural},
			"%s have been declared in %s, but are not members of any %s. All %s must be allocated to a %s.",
			strings.Join(leftover, ", "), personsPlural, kind.Key, personsPlural, kind.Key)
	}
	return nil
}

// toStrictSyntax normalizes a role field into a list of person ids:
// a bare scalar becomes a single-element list, integer-looking entries
// become their decimal string form (ids compare as strings). Anything
// that is not a scalar or a sequence is rejected.
func toStrictSyntax(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		return []any{v}, true
	case int:
		return []any{strconv.Itoa(v)}, true
	case int64:
		return []any{strconv.FormatInt(v, 10)}, true
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			switch n := item.(type) {
			case int:
				out[i] = strconv.Itoa(n)
			case int64:
				out[i] = strconv.FormatInt(n, 10)
			default:
				out[i] = item
			}
		}
		return out, true
	default:
		return nil, false
	}
}
