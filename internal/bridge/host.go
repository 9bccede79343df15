package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/question"
	"github.com/examsys/exam-core/internal/session"
)

// outBufferSize bounds the host -> surface queue. A surface that stops
// draining loses messages instead of blocking answer intake.
const outBufferSize = 16

var ErrUnknownMessage = errors.New("unknown bridge message type")

// AnswerSink is the slice of the session service the bridge needs to
// persist drawn answers.
type AnswerSink interface {
	RecordAnswer(ctx context.Context, sessionID, learnerID, questionID uuid.UUID, sub session.AnswerSubmission) error
	GetAnswers(ctx context.Context, sessionID, learnerID uuid.UUID) ([]*answer.AnswerRecord, error)
}

// ShapeLoader fetches the live shape set for an answer so a reconnecting
// surface can restore its drawing.
type ShapeLoader interface {
	GetShapes(answerID uuid.UUID) ([]answer.DrawingShape, error)
}

// Host pairs one exam session with one drawing surface connection. It
// owns the outbound queue and translates inbound frames into session
// operations. The surface may come and go; the host tolerates both.
type Host struct {
	sessionID uuid.UUID
	learnerID uuid.UUID

	sink      AnswerSink
	shapes    ShapeLoader
	questions question.QuestionRepository

	out       chan Envelope
	done      chan struct{}
	closeOnce sync.Once
}

func NewHost(sessionID, learnerID uuid.UUID, sink AnswerSink, shapes ShapeLoader, questions question.QuestionRepository) *Host {
	return &Host{
		sessionID: sessionID,
		learnerID: learnerID,
		sink:      sink,
		shapes:    shapes,
		questions: questions,
		out:       make(chan Envelope, outBufferSize),
		done:      make(chan struct{}),
	}
}

// Out is the stream of envelopes the transport should deliver to the
// surface.
func (h *Host) Out() <-chan Envelope {
	return h.out
}

// Done is closed when the host is retired; the transport's write loop
// ends on it.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Close retires the host. Safe to call more than once: a host evicted
// by a reconnect is closed by the new connection and again by its own
// teardown.
func (h *Host) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// LoadQuestion pushes a question to the surface along with any shapes
// already saved for it in this session.
func (h *Host) LoadQuestion(ctx context.Context, questionID uuid.UUID) error {
	q, err := h.questions.FindByID(questionID)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("question %s not found", questionID)
	}

	view, err := question.NewStudentView(q)
	if err != nil {
		return err
	}

	payload := LoadQuestionPayload{Question: view}
	if saved, err := h.savedShapes(ctx, questionID); err == nil {
		payload.SavedShapes = saved
	} else {
		config.WithContext(ctx).WithError(err).Warn("Could not restore saved shapes for surface")
	}

	env, err := newEnvelope(MsgLoadQuestion, payload)
	if err != nil {
		return err
	}
	h.send(ctx, env)
	return nil
}

// ClearAnswer tells the surface to wipe its canvas.
func (h *Host) ClearAnswer(ctx context.Context) {
	h.send(ctx, Envelope{MessageType: MsgClearAnswer})
}

// RequestSubmit asks the surface to flush its current drawing back as a
// SubmitAnswer frame.
func (h *Host) RequestSubmit(ctx context.Context) {
	h.send(ctx, Envelope{MessageType: MsgRequestSubmit})
}

// HandleIncoming processes one raw frame from the surface. Malformed
// frames are logged and dropped; the connection stays up.
func (h *Host) HandleIncoming(ctx context.Context, raw []byte) error {
	log := config.WithContext(ctx).WithField("session_id", h.sessionID)

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("Discarding malformed bridge frame")
		return nil
	}

	switch env.MessageType {
	case MsgSubmitAnswer, MsgAutoSave:
		var payload SubmitAnswerPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			log.WithError(err).Warn("Discarding malformed submit payload")
			return nil
		}
		if payload.QuestionID == uuid.Nil {
			log.Warn("Discarding submit payload without a question id")
			return nil
		}
		sub := session.AnswerSubmission{
			Shapes:              payload.Shapes,
			DrawDurationSeconds: payload.DrawDurationSeconds,
			AutoSave:            env.MessageType == MsgAutoSave,
		}
		if err := h.sink.RecordAnswer(ctx, h.sessionID, h.learnerID, payload.QuestionID, sub); err != nil {
			log.WithError(err).Error("Failed to record drawn answer")
			h.sendError(ctx, "record_failed", err.Error())
			return err
		}
		return nil

	case MsgError:
		var payload ErrorPayload
		if err := json.Unmarshal(env.Payload, &payload); err == nil {
			log.WithField("surface_error", payload.Message).Warn("Drawing surface reported an error")
		}
		return nil

	default:
		log.WithField("message_type", env.MessageType).Warn("Discarding unknown bridge frame")
		return ErrUnknownMessage
	}
}

func (h *Host) savedShapes(ctx context.Context, questionID uuid.UUID) ([]answer.Shape, error) {
	records, err := h.sink.GetAnswers(ctx, h.sessionID, h.learnerID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.QuestionID != questionID {
			continue
		}
		rows, err := h.shapes.GetShapes(rec.ID)
		if err != nil {
			return nil, err
		}
		shapes := make([]answer.Shape, 0, len(rows))
		for _, row := range rows {
			s, err := row.ToShape()
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, s)
		}
		return shapes, nil
	}
	return nil, nil
}

func (h *Host) sendError(ctx context.Context, code, message string) {
	env, err := newEnvelope(MsgError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	h.send(ctx, env)
}

// send never blocks; a retired host or a full queue drops the frame.
func (h *Host) send(ctx context.Context, env Envelope) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.out <- env:
	default:
		config.WithContext(ctx).WithFields(map[string]interface{}{
			"session_id":   h.sessionID,
			"message_type": env.MessageType,
		}).Warn("Drawing surface not draining, frame dropped")
	}
}
