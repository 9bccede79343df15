package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/question"
)

// Message types flowing host -> surface.
const (
	MsgLoadQuestion  = "LoadQuestion"
	MsgClearAnswer   = "ClearAnswer"
	MsgRequestSubmit = "RequestSubmit"
)

// Message types flowing surface -> host.
const (
	MsgSubmitAnswer = "SubmitAnswer"
	MsgAutoSave     = "AutoSave"
	MsgError        = "Error"
)

// Envelope is the single wire frame both directions share. Payload
// stays raw until the message type picks a decoder.
type Envelope struct {
	MessageType string          `json:"messageType"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

func newEnvelope(messageType string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", messageType, err)
	}
	return Envelope{MessageType: messageType, Payload: raw}, nil
}

// LoadQuestionPayload carries everything the drawing surface needs to
// present a question. Reference shapes and rubric data never appear
// here; the learner-safe view enforces that.
type LoadQuestionPayload struct {
	Question    *question.StudentView `json:"question"`
	SavedShapes []answer.Shape        `json:"savedShapes,omitempty"`
}

type SubmitAnswerPayload struct {
	QuestionID          uuid.UUID      `json:"questionId"`
	Shapes              []answer.Shape `json:"shapes"`
	DrawDurationSeconds int            `json:"drawDurationSeconds"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
