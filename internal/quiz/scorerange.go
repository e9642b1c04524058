package quiz

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ScoreRange is the parsed form of a "min-max" range string.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ZeroRange is the range a freshly created mapping starts with.
var ZeroRange = ScoreRange{}

// String renders the canonical wire form, e.g. "1-3" or "-5--2".
func (r ScoreRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Overlaps reports whether two ranges share at least one score.
func (r ScoreRange) Overlaps(o ScoreRange) bool {
	return r.Min <= o.Max && o.Min <= r.Max
}

// A single dash separates the bounds; each bound may carry its own sign.
// "-5--2" is {-5,-2} and "-1-5" is {-1,5}.
var rangePattern = regexp.MustCompile(`^\s*(-?\d+)\s*-\s*(-?\d+)\s*$`)

// Reasons carried by RangeError.
var (
	ErrRangeSyntax   = errors.New("expected \"min-max\" with integer bounds")
	ErrRangeInverted = errors.New("min is greater than max")
	ErrRangeBelow    = errors.New("min is below the section minimum")
	ErrRangeAbove    = errors.New("max is above the section maximum")
)

// RangeError is a client-side validation failure for one section of a
// result mapping. No request is sent when it is returned.
type RangeError struct {
	Section Section
	Input   string
	Bounds  Bounds
	Err     error
}

func (e *RangeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrRangeBelow), errors.Is(e.Err, ErrRangeAbove):
		return fmt.Sprintf("%s range %q: %v (allowed %s)", e.Section, e.Input, e.Err, e.Bounds)
	case e.Section != "":
		return fmt.Sprintf("%s range %q: %v", e.Section, e.Input, e.Err)
	default:
		return fmt.Sprintf("range %q: %v", e.Input, e.Err)
	}
}

func (e *RangeError) Unwrap() error { return e.Err }

// ParseRange parses a "min-max" string. It checks syntax and ordering only;
// use ValidateRange to also check section bounds.
func ParseRange(s string) (ScoreRange, error) {
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return ScoreRange{}, &RangeError{Input: s, Err: ErrRangeSyntax}
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return ScoreRange{}, &RangeError{Input: s, Err: ErrRangeSyntax}
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return ScoreRange{}, &RangeError{Input: s, Err: ErrRangeSyntax}
	}
	if lo > hi {
		return ScoreRange{}, &RangeError{Input: s, Err: ErrRangeInverted}
	}
	return ScoreRange{Min: lo, Max: hi}, nil
}

// ValidateRange parses input and checks it against the aggregated bounds of
// its section.
func ValidateRange(sec Section, input string, b Bounds) (ScoreRange, error) {
	r, err := ParseRange(input)
	if err != nil {
		var re *RangeError
		if errors.As(err, &re) {
			re.Section = sec
			re.Bounds = b
		}
		return ScoreRange{}, err
	}
	if r.Min < b.Min {
		return ScoreRange{}, &RangeError{Section: sec, Input: input, Bounds: b, Err: ErrRangeBelow}
	}
	if r.Max > b.Max {
		return ScoreRange{}, &RangeError{Section: sec, Input: input, Bounds: b, Err: ErrRangeAbove}
	}
	return r, nil
}

// ValidateResult checks all four ranges of a mapping and returns a copy
// with every range rewritten in canonical form, so saving an unchanged
// mapping twice stores the same strings. All failing sections are reported
// together.
func ValidateResult(r Result, bounds SectionBounds) (Result, error) {
	var errs []error
	out := r
	for _, s := range sections {
		sr, err := ValidateRange(s, r.Range(s), bounds.For(s))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = out.WithRange(s, sr.String())
	}
	if len(errs) > 0 {
		return r, errors.Join(errs...)
	}
	return out, nil
}

// Overlap describes two mappings whose ranges for one section intersect.
// Overlaps are allowed; they are surfaced as warnings only.
type Overlap struct {
	Section Section
	A, B    int64 // skin type IDs
	RangeA  ScoreRange
	RangeB  ScoreRange
}

// FindOverlaps lists every pair of mappings whose ranges intersect in some
// section. Unparsable ranges are skipped.
func FindOverlaps(results []Result) []Overlap {
	var out []Overlap
	for _, s := range sections {
		for i := 0; i < len(results); i++ {
			ra, err := ParseRange(results[i].Range(s))
			if err != nil {
				continue
			}
			for j := i + 1; j < len(results); j++ {
				rb, err := ParseRange(results[j].Range(s))
				if err != nil {
					continue
				}
				if ra.Overlaps(rb) {
					out = append(out, Overlap{
						Section: s,
						A:       results[i].SkinTypeID,
						B:       results[j].SkinTypeID,
						RangeA:  ra,
						RangeB:  rb,
					})
				}
			}
		}
	}
	return out
}
