// Package entity describes the kinds of simulated units a model declares:
// exactly one person kind plus any number of group kinds (household, tax
// unit, ...), each group kind carrying an ordered list of roles.
//
// What:
//
//   - Role names a slot a person occupies inside one group instance
//     (parent, child, ...), optionally refined into ordered subroles
//     (first_parent, second_parent) and capped by Max.
//   - Kind is a typed descriptor for one entity kind: key (singular name),
//     plural name, person flag, ordered roles.
//   - Registry resolves kinds by plural or singular name and is validated
//     once at construction, so downstream code never re-derives kind
//     structure from strings per call.
//
// Errors:
//
//   - ErrNoPersonKind: the registry does not declare exactly one person kind.
//   - ErrDuplicateKindName: two kinds share a plural or singular name.
//   - ErrNoRoles: a group kind declares no roles.
//
// Descriptors are built once and treated as immutable afterwards.
package entity
