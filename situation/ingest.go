package situation

import (
	"slices"

	"github.com/katalvlaran/simpop/entity"
	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/variable"
)

// initVariableValues ingests one instance's variable fields into the
// period-keyed input buffer, validating ownership, period keys and values
// along the way.
func (b *Builder) initVariableValues(kind *entity.Kind, fields *Object, instanceID string) error {
	for _, name := range fields.Keys() {
		raw, _ := fields.Get(name)
		path := []string{kind.Plural, instanceID, name}

		v, err := b.system.Variables.Get(name)
		if err != nil {
			return newNotFoundError(path, "variable %q was not found", name)
		}
		if v.Entity != kind.Key {
			return newError(path, "variable %q is defined for %q; it cannot be set for %q",
				name, v.Entity, kind.Key)
		}

		instanceIndex := slices.Index(b.getIDs(kind.Plural), instanceID)

		periodValues, ok := raw.(*Object)
		if !ok {
			if b.defaultPeriod == nil {
				return newError(path, "Can't deal with type: expected object. "+
					"Input variables should be set for specific periods. For instance: "+
					"{'salary': {'2017-01': 2000, '2017-02': 2500}}, or {'birth_date': {'ETERNITY': '1980-01-01'}}.")
			}
			periodValues = NewObject().Set(b.defaultPeriod.Key(), raw)
		}

		for _, periodKey := range periodValues.Keys() {
			value, _ := periodValues.Get(periodKey)
			p, err := period.Parse(periodKey)
			if err != nil {
				return newError(path, "%s", err.Error())
			}
			if err := b.addVariableValue(kind, v, instanceIndex, instanceID, p, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// addVariableValue coerces one (instance, period) value into the buffer.
// The buffered array is created on first sight, sized to the kind's
// current count and default-filled; re-writing the same slot keeps the
// later value. Nil values are a no-op.
func (b *Builder) addVariableValue(kind *entity.Kind, v *variable.Variable,
	instanceIndex int, instanceID string, p period.Period, raw any) error {

	if raw == nil {
		return nil
	}
	key := p.Key()
	path := []string{kind.Plural, instanceID, v.Name, key}

	arr := b.inputBuffer[v.Name][key]
	if arr == nil {
		arr = v.DefaultArray(b.getCount(kind.Plural))
	}

	val, err := v.CheckValue(raw)
	if err != nil {
		return newError(path, "%s", err.Error())
	}
	arr[instanceIndex] = val

	b.setInput(v.Name, key, arr)
	b.recordOrigin(v.Name, key, path)
	return nil
}
