package quiz

import (
	"errors"
	"strings"
	"testing"
)

func TestNewQuestion_ValidatesShape(t *testing.T) {
	o, err := NewOption("  Very oily ", 3)
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	if o.Value != "Very oily" {
		t.Errorf("value not trimmed: %q", o.Value)
	}

	q, err := NewQuestion("How does your skin feel at noon?", SectionOilyDry, o)
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	if len(q.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(q.Options))
	}
}

func TestNewQuestion_RejectsBadShape(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		section Section
		options []Option
		field   string
	}{
		{"empty text", "  ", SectionOilyDry, nil, "value"},
		{"unknown section", "q", Section("XX"), nil, "section"},
		{"empty option", "q", SectionSensitive, []Option{{Value: ""}}, "options[0].value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestion(tt.value, tt.section, tt.options...)
			if err == nil {
				t.Fatal("expected error")
			}
			var se *ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("expected *ShapeError, got %T", err)
			}
			if !strings.Contains(se.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", se.Error(), tt.field)
			}
		})
	}
}

func TestNewResult_StartsAtZero(t *testing.T) {
	r, err := NewResult(4, 9)
	if err != nil {
		t.Fatalf("NewResult: %v", err)
	}
	if r.QuizID != 4 || r.SkinTypeID != 9 {
		t.Errorf("ids = %d/%d, want 4/9", r.QuizID, r.SkinTypeID)
	}
	for _, s := range Sections() {
		if r.Range(s) != "0-0" {
			t.Errorf("%s = %q, want 0-0", s, r.Range(s))
		}
	}
}

func TestNewResult_RequiresSkinType(t *testing.T) {
	if _, err := NewResult(1, 0); err == nil {
		t.Fatal("expected error for missing skin type")
	}
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("od")
	if err != nil || s != SectionOilyDry {
		t.Fatalf("ParseSection(od) = %q, %v", s, err)
	}
	if _, err := ParseSection("zz"); err == nil {
		t.Fatal("expected error for unknown section")
	}
	if SectionWrinkledTight.Next() != SectionOilyDry {
		t.Error("Next should wrap around")
	}
}

func TestScoreSpan(t *testing.T) {
	q := Question{Options: opts(4, -2, 7)}
	lo, hi := q.ScoreSpan()
	if lo != -2 || hi != 7 {
		t.Errorf("span = %d..%d, want -2..7", lo, hi)
	}
	lo, hi = Question{}.ScoreSpan()
	if lo != 0 || hi != 0 {
		t.Errorf("empty span = %d..%d, want 0..0", lo, hi)
	}
}

func TestFinders(t *testing.T) {
	qs := QuizSet{
		Questions: []Question{{ID: 1, Options: []Option{{ID: 10}, {ID: 11}}}},
		Results:   []Result{{ID: 5, SkinTypeID: 2}},
	}
	if _, ok := qs.FindQuestion(1); !ok {
		t.Error("question 1 not found")
	}
	if o, q, ok := qs.FindOption(11); !ok || o.ID != 11 || q.ID != 1 {
		t.Error("option 11 not found with owner")
	}
	if _, ok := qs.FindResult(6); ok {
		t.Error("result 6 should not exist")
	}
}
