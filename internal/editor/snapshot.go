package editor

import (
	"fmt"
	"sort"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// Snapshot is one full fetch of the quiz detail graph plus the skin type
// reference list. Everything the editor shows is derived from the latest
// snapshot; nothing is patched locally.
type Snapshot struct {
	Quiz      quiz.QuizSet
	SkinTypes []quiz.SkinType
}

// Mapping pairs a configured result with its skin type.
type Mapping struct {
	Result   quiz.Result
	SkinType quiz.SkinType
}

// Bounds recomputes the per-section score bounds from the current questions.
func (s *Snapshot) Bounds() quiz.SectionBounds {
	return quiz.Aggregate(s.Quiz.Questions)
}

// Configured returns the result mappings in skin type name order.
func (s *Snapshot) Configured() []Mapping {
	byID := s.skinTypesByID()
	out := make([]Mapping, 0, len(s.Quiz.Results))
	for _, r := range s.Quiz.Results {
		st, ok := byID[r.SkinTypeID]
		if !ok {
			st = quiz.SkinType{ID: r.SkinTypeID, Name: fmt.Sprintf("skin type #%d", r.SkinTypeID)}
		}
		out = append(out, Mapping{Result: r, SkinType: st})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SkinType.Name < out[j].SkinType.Name
	})
	return out
}

// Available returns the skin types not yet configured for this quiz.
func (s *Snapshot) Available() []quiz.SkinType {
	used := make(map[int64]bool, len(s.Quiz.Results))
	for _, r := range s.Quiz.Results {
		used[r.SkinTypeID] = true
	}
	var out []quiz.SkinType
	for _, st := range s.SkinTypes {
		if !used[st.ID] {
			out = append(out, st)
		}
	}
	return out
}

// IsAvailable reports whether a skin type can still be added.
func (s *Snapshot) IsAvailable(skinTypeID int64) bool {
	for _, st := range s.Available() {
		if st.ID == skinTypeID {
			return true
		}
	}
	return false
}

// SkinTypeName returns the display name of a skin type.
func (s *Snapshot) SkinTypeName(id int64) string {
	if st, ok := s.skinTypesByID()[id]; ok {
		return st.Name
	}
	return fmt.Sprintf("skin type #%d", id)
}

func (s *Snapshot) skinTypesByID() map[int64]quiz.SkinType {
	m := make(map[int64]quiz.SkinType, len(s.SkinTypes))
	for _, st := range s.SkinTypes {
		m[st.ID] = st
	}
	return m
}
