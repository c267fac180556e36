// Package simulation holds the object a situation build produces: one
// Population per entity kind, carrying the final instance count, ordered
// ids, group memberships and roles, plus a value Holder per variable.
//
// What:
//
//   - System pairs the entity-kind registry with the variable registry and
//     is validated once (every variable must name a declared kind).
//   - Population is the per-kind state the builder stamps during
//     finalization. For group kinds, MembersEntityID[i] and MembersRole[i]
//     give the group instance index and role of person i.
//   - Holder stores committed value arrays per period and implements
//     SetInput, the commit operation. Inputs coarser than the variable's
//     definition period are decomposed onto the periods they span: already
//     committed finer periods are left alone (they are more specific —
//     which is why the builder commits smallest periods first), missing
//     ones receive the dispatched value or, for divisible numeric
//     variables, an equal share of the remainder.
//   - SetInput rejects inputs finer than the definition period with a
//     *PeriodMismatchError carrying the variable name and period.
//
// Concurrency: a Simulation is mutated by a single builder and must not be
// shared while the build is in flight.
//
// Errors:
//
//   - ErrWrongEntity: a variable resolved against a kind that does not own it.
//   - ErrBadArraySize: a committed array does not match the population count.
//   - PeriodMismatchError: input finer than the definition period, or an
//     undecomposable period (eternity onto a dated variable).
package simulation
