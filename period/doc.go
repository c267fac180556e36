// Package period parses, canonicalizes and orders the time-period keys
// used to date variable values.
//
// What:
//
//   - Period represents a span of Size consecutive calendar units (day,
//     month, year) anchored at a start date, or the special ETERNITY span.
//   - Parse accepts the bare forms "2024", "2024-01", "2024-01-15", the
//     prefixed forms "year:2024[:n]", "month:2024-01[:n]",
//     "day:2024-01-15[:n]", and "ETERNITY".
//   - Key renders the canonical string form; Parse(Key()) round-trips.
//   - Compare orders periods by (unit, size) ascending, so months sort
//     before years and years before eternity. Input buffers are committed
//     in that order so that finer-grained values land first.
//   - Months enumerates the month periods a month- or year-grained period
//     spans, which drives decomposition of coarse inputs onto monthly
//     variables.
//
// Errors:
//
//   - ErrMalformed: the key does not match any accepted form.
//   - ErrInvalidDate: the key parses but names an impossible date.
//
// Periods are small immutable values; all functions are pure.
package period
