package situation

// ExplicitSingularEntities rewrites the single-instance entity shortcut
// into canonical plural form: a key naming a kind's singular becomes one
// instance — keyed by that singular name — under the kind's plural key.
//
//	{"persons": {...}, "household": {"parents": ["Javier"]}}
//	  → {"persons": {...}, "households": {"household": {"parents": ["Javier"]}}}
//
// A document without singular keys is returned as-is, so the transform is
// the identity on canonical documents. When a rewrite does happen, only
// plural-kind keys and the reserved "axes" key are carried over; anything
// else is dropped here and surfaced as an unexpected-entity error by the
// caller that validated the original document. Pure transform, no errors.
func (b *Builder) ExplicitSingularEntities(doc *Object) *Object {
	var singulars []string
	for _, key := range doc.Keys() {
		if _, ok := b.system.Entities.BySingular(key); ok {
			singulars = append(singulars, key)
		}
	}
	if len(singulars) == 0 {
		return doc
	}

	result := NewObject()
	for _, key := range doc.Keys() {
		_, isPlural := b.system.Entities.ByPlural(key)
		if isPlural || key == axesKey {
			v, _ := doc.Get(key)
			result.Set(key, v)
		}
	}
	for _, singular := range singulars {
		kind, _ := b.system.Entities.BySingular(singular)
		fields, _ := doc.Get(singular)
		result.Set(kind.Plural, NewObject().Set(singular, fields))
	}
	return result
}
