// Package situation turns a declarative situation document — who exists,
// who belongs to what, which variable values hold over which periods —
// into a populated simulation.
//
// What:
//
//   - Builder is a build-scoped orchestrator bound to a simulation.System.
//     BuildFromDict is the front door: it normalizes the document and
//     dispatches between the entities path and the bare-variables path.
//   - ExplicitSingularEntities rewrites the single-instance shortcut
//     ("household": {...}) into canonical plural form.
//   - AddPersonEntity and AddGroupEntity populate counts, ordered ids,
//     person-indexed memberships and roles, validating that every person
//     lands in exactly one role of exactly one instance per group kind.
//   - Variable values are staged in a period-keyed input buffer, one array
//     slot per instance, and committed to holders only at finalize time —
//     months before years, so finer-grained values are never clobbered.
//   - Axes sweep variable values over replicated populations: parallel
//     axes share one expansion, perpendicular groups combine as a full
//     Cartesian product.
//   - DecodeYAML decodes a YAML document preserving mapping order, which
//     fixes the array index of every declared instance.
//
// Why:
//
// Situation documents arrive as YAML or JSON written by humans; most of
// this package is validation that turns shape mistakes into errors that
// point at the offending document path instead of failing deep inside
// array plumbing.
//
// Errors:
//
// All validation failures are *Error values carrying the document path,
// a message and an HTTP-ish code (CodeNotFound for unknown variables).
//
// A Builder is single-use and not safe for concurrent use.
package situation
