package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    ScoreRange
		wantErr error
	}{
		{"1-3", ScoreRange{1, 3}, nil},
		{"0-0", ScoreRange{0, 0}, nil},
		{" 2 - 7 ", ScoreRange{2, 7}, nil},
		{"-5--2", ScoreRange{-5, -2}, nil},
		{"-1-5", ScoreRange{-1, 5}, nil},
		{"3-1", ScoreRange{}, ErrRangeInverted},
		{"1--2", ScoreRange{}, ErrRangeInverted},
		{"a-b", ScoreRange{}, ErrRangeSyntax},
		{"1.5-3", ScoreRange{}, ErrRangeSyntax},
		{"13", ScoreRange{}, ErrRangeSyntax},
		{"", ScoreRange{}, ErrRangeSyntax},
		{"1-2-3", ScoreRange{}, ErrRangeSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRange_Bounds(t *testing.T) {
	od := Bounds{Min: 0, Max: 4}

	tests := []struct {
		input   string
		wantErr error
	}{
		{"1-3", nil},
		{"0-4", nil},
		{"0-0", nil},
		{"4-4", nil},
		{"-1-5", ErrRangeBelow},
		{"-1-3", ErrRangeBelow},
		{"1-5", ErrRangeAbove},
		{"3-2", ErrRangeInverted},
		{"x-2", ErrRangeSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ValidateRange(SectionOilyDry, tt.input, od)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var re *RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, SectionOilyDry, re.Section)
		})
	}
}

func TestValidateRange_AcceptsEverythingInside(t *testing.T) {
	b := Bounds{Min: -3, Max: 6}
	for lo := b.Min; lo <= b.Max; lo++ {
		for hi := lo; hi <= b.Max; hi++ {
			r := ScoreRange{Min: lo, Max: hi}
			got, err := ValidateRange(SectionSensitive, r.String(), b)
			if err != nil {
				t.Fatalf("%s rejected: %v", r, err)
			}
			if got != r {
				t.Fatalf("parsed %v, want %v", got, r)
			}
		}
	}
}

func TestValidateResult_NewMappingPassesWithZeroBounds(t *testing.T) {
	r, err := NewResult(1, 7)
	require.NoError(t, err)

	bounds := Aggregate([]Question{
		{Section: SectionOilyDry, Options: opts(0, 2)},
	})
	out, err := ValidateResult(r, bounds)
	require.NoError(t, err)
	for _, s := range Sections() {
		assert.Equal(t, "0-0", out.Range(s))
	}
}

func TestValidateResult_CanonicalisesAndIsIdempotent(t *testing.T) {
	bounds := SectionBounds{
		SectionOilyDry:       {0, 4},
		SectionSensitive:     {0, 4},
		SectionPigmented:     {0, 4},
		SectionWrinkledTight: {0, 4},
	}
	r := Result{SkinTypeID: 1, ODRange: " 1 - 3", SRRange: "0-4", PNRange: "2-2", WTRange: "0 -1"}

	first, err := ValidateResult(r, bounds)
	require.NoError(t, err)
	assert.Equal(t, "1-3", first.ODRange)
	assert.Equal(t, "0-1", first.WTRange)

	second, err := ValidateResult(first, bounds)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateResult_ReportsEveryFailingSection(t *testing.T) {
	bounds := Aggregate(nil)
	r := Result{SkinTypeID: 1, ODRange: "1-1", SRRange: "0-0", PNRange: "zz", WTRange: "0-0"}

	out, err := ValidateResult(r, bounds)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeAbove)
	assert.ErrorIs(t, err, ErrRangeSyntax)
	assert.Equal(t, r, out, "failed validation must return the input unchanged")
}

func TestFindOverlaps(t *testing.T) {
	results := []Result{
		{SkinTypeID: 1, ODRange: "0-2", SRRange: "0-0", PNRange: "0-0", WTRange: "0-0"},
		{SkinTypeID: 2, ODRange: "2-4", SRRange: "1-1", PNRange: "bad", WTRange: "1-2"},
		{SkinTypeID: 3, ODRange: "5-6", SRRange: "2-2", PNRange: "0-0", WTRange: "3-4"},
	}

	got := FindOverlaps(results)

	// OD: 1/2 share score 2. PN: 1/3 both 0-0. SR and WT are disjoint.
	require.Len(t, got, 2)
	assert.Equal(t, SectionOilyDry, got[0].Section)
	assert.Equal(t, int64(1), got[0].A)
	assert.Equal(t, int64(2), got[0].B)
	assert.Equal(t, SectionPigmented, got[1].Section)
	assert.Equal(t, int64(3), got[1].B)
}
