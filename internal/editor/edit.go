package editor

import "github.com/abhisek/dermaquiz/internal/quiz"

// Kind identifies the entity that owns an editable field.
type Kind int

const (
	KindQuiz Kind = iota
	KindQuestion
	KindOption
	KindResult
)

func (k Kind) String() string {
	switch k {
	case KindQuiz:
		return "quiz"
	case KindQuestion:
		return "question"
	case KindOption:
		return "option"
	case KindResult:
		return "result"
	}
	return "unknown"
}

// Key addresses one row in the editor.
type Key struct {
	Kind Kind
	ID   int64
}

// Field names an editable field within a row.
type Field string

const (
	FieldName    Field = "name"
	FieldDefault Field = "default"
	FieldText    Field = "value"
	FieldSection Field = "section"
	FieldScore   Field = "score"
)

// FieldRange is the field holding one section's range on a result card.
func FieldRange(s quiz.Section) Field {
	return Field("range:" + string(s))
}

// Edit is a committed change to a single field.
type Edit struct {
	Key   Key
	Field Field
	Value string
}
