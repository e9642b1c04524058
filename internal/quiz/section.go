package quiz

import (
	"fmt"
	"strings"
)

// Section is one of the four fixed skin-assessment axes. Every question is
// tagged with exactly one section and every result mapping holds one score
// range per section.
type Section string

const (
	SectionOilyDry       Section = "OD"
	SectionSensitive     Section = "SR"
	SectionPigmented     Section = "PN"
	SectionWrinkledTight Section = "WT"
)

var sections = []Section{
	SectionOilyDry,
	SectionSensitive,
	SectionPigmented,
	SectionWrinkledTight,
}

var sectionLabels = map[Section]string{
	SectionOilyDry:       "Oily / Dry",
	SectionSensitive:     "Sensitive / Resistant",
	SectionPigmented:     "Pigmented / Non-pigmented",
	SectionWrinkledTight: "Wrinkled / Tight",
}

// Sections returns the four sections in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// ParseSection accepts a section tag in any case.
func ParseSection(s string) (Section, error) {
	sec := Section(strings.ToUpper(strings.TrimSpace(s)))
	if !sec.Valid() {
		return "", fmt.Errorf("unknown section %q (want one of OD, SR, PN, WT)", s)
	}
	return sec, nil
}

// Valid reports whether s is one of the four known sections.
func (s Section) Valid() bool {
	_, ok := sectionLabels[s]
	return ok
}

// Label returns the human-readable name of the section.
func (s Section) Label() string {
	if l, ok := sectionLabels[s]; ok {
		return l
	}
	return string(s)
}

// Next returns the section after s, wrapping around. Used by selectors that
// cycle through the fixed set.
func (s Section) Next() Section {
	for i, sec := range sections {
		if sec == s {
			return sections[(i+1)%len(sections)]
		}
	}
	return sections[0]
}
