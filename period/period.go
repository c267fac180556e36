package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unit is the calendar granularity of a Period. The declaration order is
// the sort order used by Compare: finer units come first.
type Unit int

const (
	// UnitDay is day granularity ("2024-01-15").
	UnitDay Unit = iota
	// UnitMonth is month granularity ("2024-01").
	UnitMonth
	// UnitYear is year granularity ("2024").
	UnitYear
	// UnitEternity covers all time ("ETERNITY").
	UnitEternity
)

// String returns the lower-case unit name used in prefixed period keys.
func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	case UnitEternity:
		return "eternity"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Period is a span of Size consecutive Units anchored at a start date.
// Month is set for month and day grains, Day only for day grain.
// Periods are immutable values; compare with == or Compare.
type Period struct {
	Unit  Unit
	Year  int
	Month int
	Day   int
	Size  int
}

// Eternity is the single period covering all time.
var Eternity = Period{Unit: UnitEternity, Size: 1}

// Parse converts a period key into a Period.
//
// Accepted forms:
//
//	"ETERNITY" (case-insensitive)
//	"2024", "2024-01", "2024-01-15"
//	"year:2024[:n]", "month:2024-01[:n]", "day:2024-01-15[:n]"
//
// where n ≥ 1 is the number of consecutive units spanned. The date part of
// a prefixed form must match the named unit's grain. Errors wrap
// ErrMalformed or ErrInvalidDate and quote the offending key.
func Parse(s string) (Period, error) {
	key := strings.TrimSpace(s)
	if strings.EqualFold(key, "eternity") {
		return Eternity, nil
	}

	date := key
	size := 1
	prefixed := false
	var want Unit

	if parts := strings.Split(key, ":"); len(parts) > 1 {
		if len(parts) > 3 {
			return Period{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		switch parts[0] {
		case "day":
			want = UnitDay
		case "month":
			want = UnitMonth
		case "year":
			want = UnitYear
		default:
			return Period{}, fmt.Errorf("%w: %q: unknown unit %q", ErrMalformed, s, parts[0])
		}
		prefixed = true
		date = parts[1]
		if len(parts) == 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 1 {
				return Period{}, fmt.Errorf("%w: %q: size must be a positive integer", ErrMalformed, s)
			}
			size = n
		}
	}

	p, err := parseDate(date, s)
	if err != nil {
		return Period{}, err
	}
	if prefixed && p.Unit != want {
		return Period{}, fmt.Errorf("%w: %q: date grain does not match unit %q", ErrMalformed, s, want)
	}
	p.Size = size
	return p, nil
}

// MustParse is Parse panicking on error; intended for fixtures and examples.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// parseDate parses the dash-separated date part; the grain is implied by
// the number of components. orig is the full key, for error messages.
func parseDate(date, orig string) (Period, error) {
	parts := strings.Split(date, "-")
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || part == "" {
			return Period{}, fmt.Errorf("%w: %q", ErrMalformed, orig)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		if nums[0] < 1 {
			return Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, orig)
		}
		return Period{Unit: UnitYear, Year: nums[0]}, nil
	case 2:
		if nums[0] < 1 || nums[1] < 1 || nums[1] > 12 {
			return Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, orig)
		}
		return Period{Unit: UnitMonth, Year: nums[0], Month: nums[1]}, nil
	case 3:
		y, m, d := nums[0], nums[1], nums[2]
		if y < 1 || m < 1 || m > 12 || d < 1 {
			return Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, orig)
		}
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
			return Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, orig)
		}
		return Period{Unit: UnitDay, Year: y, Month: m, Day: d}, nil
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrMalformed, orig)
	}
}

// Key renders the canonical string form. Parse(p.Key()) round-trips.
func (p Period) Key() string {
	if p.Unit == UnitEternity {
		return "ETERNITY"
	}
	var date string
	switch p.Unit {
	case UnitYear:
		date = fmt.Sprintf("%04d", p.Year)
	case UnitMonth:
		date = fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	default:
		date = fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	}
	if p.Size <= 1 {
		return date
	}
	return fmt.Sprintf("%s:%s:%d", p.Unit, date, p.Size)
}

// String implements fmt.Stringer as an alias of Key.
func (p Period) String() string { return p.Key() }

// Compare orders periods by the span of time they cover: first by unit
// (day < month < year < eternity), then by size. It is the sort key for
// committing buffered inputs smallest-first.
func Compare(a, b Period) int {
	if a.Unit != b.Unit {
		return int(a.Unit) - int(b.Unit)
	}
	return a.Size - b.Size
}

// Years enumerates the year periods a year-grained p spans, in
// chronological order. Other grains return nil.
func (p Period) Years() []Period {
	if p.Unit != UnitYear {
		return nil
	}
	years := make([]Period, 0, p.Size)
	for i := 0; i < p.Size; i++ {
		years = append(years, Period{Unit: UnitYear, Year: p.Year + i, Size: 1})
	}
	return years
}

// Months enumerates the month periods p spans, in chronological order:
// Size months for a month-grained period, Size×12 for a year-grained one.
// Other grains return nil.
func (p Period) Months() []Period {
	var n int
	y, m := p.Year, p.Month
	switch p.Unit {
	case UnitMonth:
		n = p.Size
	case UnitYear:
		n = p.Size * 12
		m = 1
	default:
		return nil
	}
	months := make([]Period, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, Period{Unit: UnitMonth, Year: y, Month: m, Size: 1})
		if m++; m > 12 {
			m = 1
			y++
		}
	}
	return months
}
