package bridge

import (
	"github.com/examsys/exam-core/internal/question"
)

type BridgeContainer struct {
	Handler  *WSHandler
	Registry *Registry
}

func NewBridgeContainer(sink AnswerSink, shapes ShapeLoader, questions question.QuestionRepository, registry *Registry) *BridgeContainer {
	handler := NewWSHandler(sink, shapes, questions, registry)

	return &BridgeContainer{
		Handler:  handler,
		Registry: registry,
	}
}
