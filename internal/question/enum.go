package question

type QuestionType string

const (
	TypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	TypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TypeTrueFalse      QuestionType = "TRUE_FALSE"
	TypeFillInBlank    QuestionType = "FILL_IN_BLANK"
	TypeEssay          QuestionType = "ESSAY"
	TypeMapDrawing     QuestionType = "MAP_DRAWING"
)

// IsObjective reports whether answers of this type can be graded by
// exact comparison against the canonical answer.
func (t QuestionType) IsObjective() bool {
	switch t {
	case TypeSingleChoice, TypeMultipleChoice, TypeTrueFalse, TypeFillInBlank:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case TypeSingleChoice, TypeMultipleChoice, TypeTrueFalse, TypeFillInBlank, TypeEssay, TypeMapDrawing:
		return true
	default:
		return false
	}
}
