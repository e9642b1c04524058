package quiz

import "fmt"

// Bounds is the theoretical minimum and maximum total score of a section.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d..%d", b.Min, b.Max)
}

// Contains reports whether r lies inside b.
func (b Bounds) Contains(r ScoreRange) bool {
	return r.Min >= b.Min && r.Max <= b.Max
}

// SectionBounds holds the aggregated bounds of every section. All four
// sections are always present.
type SectionBounds map[Section]Bounds

// Aggregate sums, per section, the lowest and highest option score of every
// question tagged with that section. Questions without options contribute
// {0,0}; sections without questions stay at {0,0}. Questions carrying an
// unknown section are ignored.
//
// The result is derived from the live question list and must be recomputed
// after every reload; it is never stored.
func Aggregate(questions []Question) SectionBounds {
	out := make(SectionBounds, len(sections))
	for _, s := range sections {
		out[s] = Bounds{}
	}
	for _, q := range questions {
		b, ok := out[q.Section]
		if !ok {
			continue
		}
		lo, hi := q.ScoreSpan()
		b.Min += lo
		b.Max += hi
		out[q.Section] = b
	}
	return out
}

// For returns the bounds of a section, {0,0} when absent.
func (sb SectionBounds) For(s Section) Bounds {
	return sb[s]
}
