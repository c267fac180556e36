// Package simpop turns declarative situation documents — people,
// households, their variable values over time — into fully populated
// simulation objects ready for computation.
//
// 🚀 What is simpop?
//
//	A small, focused library that brings together:
//		• Periods: parse, canonicalize and order calendar spans (month, year, eternity)
//		• Entities: typed kinds, roles and subroles with validated registries
//		• Variables: declared inputs with cty-typed values and default arrays
//		• Simulation: per-kind populations and period-aware value holders
//		• Situations: YAML/JSON documents validated into populations, with
//		  path-located errors and axis sweeps over replicated populations
//
// ✨ Why choose simpop?
//
//   - Order-preserving – instance declaration order decides array indexes
//   - Error paths – every validation failure points at the offending
//     document fragment, not at internal array plumbing
//   - Axis expansion – parallel and perpendicular sweeps build whole
//     populations from one small situation document
//
// Everything is organized under five subpackages:
//
//	period/     — period keys: parsing, ordering, month/year decomposition
//	entity/     — entity kinds, roles, subroles & the kind registry
//	variable/   — variable declarations, value coercion & the variable registry
//	simulation/ — populations, period-aware value holders, the assembled simulation
//	situation/  — the document builder: normalize → populate → ingest → expand → finalize
//
// Quick YAML example:
//
//	persons:
//	  Alicia: {salary: {2024-01: 2000}}
//	  Javier: {}
//	households:
//	  h1: {parents: [Alicia], children: [Javier]}
//
//	builds two persons and one household, with Alicia's January salary
//	committed to the person population.
//
// See situation.Builder for the front door, and examples/ for runnable
// scenarios.
//
//	go get github.com/katalvlaran/simpop
package simpop
