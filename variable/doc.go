// Package variable declares the model's input variables and the registry
// the build core resolves them against.
//
// What:
//
//   - Variable binds a name to its owning entity kind, a cty value type,
//     a default value, a definition period (the grain values are natively
//     stored at) and a divisibility flag controlling how coarser inputs
//     are decomposed.
//   - DefaultArray is the factory for dense per-instance value arrays.
//   - CheckValue coerces a raw decoded value (as produced by a YAML or
//     JSON decoder) into the variable's canonical cty.Value, rejecting
//     anything inconvertible.
//   - Registry resolves variables by name.
//
// Values are cty.Value throughout, so one array type carries numbers,
// strings, booleans and dates uniformly while staying type-checked at the
// coercion boundary.
//
// Errors:
//
//   - ErrVariableNotFound: no variable with the requested name.
//   - ErrBadValue: a raw value cannot be coerced to the variable's type.
//   - ErrBadVariable: an invalid declaration at registry construction.
package variable
