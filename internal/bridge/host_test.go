package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/question"
	"github.com/examsys/exam-core/internal/session"
)

type recordedCall struct {
	sessionID  uuid.UUID
	learnerID  uuid.UUID
	questionID uuid.UUID
	sub        session.AnswerSubmission
}

type fakeSink struct {
	calls   []recordedCall
	failErr error
	answers []*answer.AnswerRecord
}

func (s *fakeSink) RecordAnswer(ctx context.Context, sessionID, learnerID, questionID uuid.UUID, sub session.AnswerSubmission) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.calls = append(s.calls, recordedCall{sessionID, learnerID, questionID, sub})
	return nil
}

func (s *fakeSink) GetAnswers(ctx context.Context, sessionID, learnerID uuid.UUID) ([]*answer.AnswerRecord, error) {
	return s.answers, nil
}

type fakeShapeLoader struct {
	shapes map[uuid.UUID][]answer.DrawingShape
}

func (l *fakeShapeLoader) GetShapes(answerID uuid.UUID) ([]answer.DrawingShape, error) {
	return l.shapes[answerID], nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*question.Question
}

func (r *fakeQuestionRepo) Create(q *question.Question) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uuid.UUID) (*question.Question, error) {
	return r.questions[id], nil
}

func (r *fakeQuestionRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*question.Question, error) {
	return r.questions, nil
}

func newTestHost(sink *fakeSink, questions map[uuid.UUID]*question.Question) *Host {
	return NewHost(
		uuid.New(), uuid.New(),
		sink,
		&fakeShapeLoader{shapes: map[uuid.UUID][]answer.DrawingShape{}},
		&fakeQuestionRepo{questions: questions},
	)
}

func frame(t *testing.T, messageType string, payload interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	env, err := json.Marshal(Envelope{MessageType: messageType, Payload: raw})
	require.NoError(t, err)
	return env
}

func TestHandleIncoming(t *testing.T) {
	ctx := context.Background()
	questionID := uuid.New()

	t.Run("SubmitAnswer", func(t *testing.T) {
		sink := &fakeSink{}
		host := newTestHost(sink, nil)

		raw := frame(t, MsgSubmitAnswer, SubmitAnswerPayload{
			QuestionID: questionID,
			Shapes: []answer.Shape{
				{Kind: answer.ShapeMarker, Coordinates: []answer.Coordinate{{Lng: 116.39, Lat: 39.9}}},
			},
			DrawDurationSeconds: 42,
		})
		require.NoError(t, host.HandleIncoming(ctx, raw))

		require.Len(t, sink.calls, 1)
		call := sink.calls[0]
		assert.Equal(t, host.sessionID, call.sessionID)
		assert.Equal(t, host.learnerID, call.learnerID)
		assert.Equal(t, questionID, call.questionID)
		assert.Len(t, call.sub.Shapes, 1)
		assert.Equal(t, 42, call.sub.DrawDurationSeconds)
		assert.False(t, call.sub.AutoSave)
	})

	t.Run("AutoSaveSetsFlag", func(t *testing.T) {
		sink := &fakeSink{}
		host := newTestHost(sink, nil)

		raw := frame(t, MsgAutoSave, SubmitAnswerPayload{QuestionID: questionID})
		require.NoError(t, host.HandleIncoming(ctx, raw))

		require.Len(t, sink.calls, 1)
		assert.True(t, sink.calls[0].sub.AutoSave)
	})

	t.Run("MalformedFrameIsDropped", func(t *testing.T) {
		sink := &fakeSink{}
		host := newTestHost(sink, nil)

		assert.NoError(t, host.HandleIncoming(ctx, []byte("{not json")))
		assert.NoError(t, host.HandleIncoming(ctx, frame(t, MsgSubmitAnswer, "not an object")))
		assert.Empty(t, sink.calls, "bad frames never reach the sink")
	})

	t.Run("MissingQuestionIDIsDropped", func(t *testing.T) {
		sink := &fakeSink{}
		host := newTestHost(sink, nil)

		raw := frame(t, MsgSubmitAnswer, SubmitAnswerPayload{DrawDurationSeconds: 5})
		assert.NoError(t, host.HandleIncoming(ctx, raw))
		assert.Empty(t, sink.calls)
	})

	t.Run("SinkFailureReportsErrorFrame", func(t *testing.T) {
		sink := &fakeSink{failErr: fmt.Errorf("db down")}
		host := newTestHost(sink, nil)

		raw := frame(t, MsgSubmitAnswer, SubmitAnswerPayload{QuestionID: questionID})
		assert.Error(t, host.HandleIncoming(ctx, raw))

		select {
		case env := <-host.Out():
			assert.Equal(t, MsgError, env.MessageType)
		default:
			t.Fatal("expected an error frame queued for the surface")
		}
	})

	t.Run("UnknownTypeIsDiscarded", func(t *testing.T) {
		sink := &fakeSink{}
		host := newTestHost(sink, nil)

		raw := frame(t, "Telemetry", map[string]int{"fps": 60})
		assert.ErrorIs(t, host.HandleIncoming(ctx, raw), ErrUnknownMessage)
		assert.Empty(t, sink.calls)
	})
}

func TestLoadQuestion(t *testing.T) {
	ctx := context.Background()

	q := &question.Question{
		ID:              uuid.New(),
		Type:            question.TypeMapDrawing,
		Title:           "Mark the harbor entrance",
		CanonicalAnswer: "secret",
		Weight:          60,
	}
	require.NoError(t, q.SetDrawingConfig(&question.DrawingConfig{
		Center:       answer.Coordinate{Lng: 121.49, Lat: 31.24},
		Zoom:         13,
		AllowedKinds: []answer.ShapeKind{answer.ShapeMarker},
	}))
	require.NoError(t, q.SetReferenceShapes([]answer.Shape{
		{Kind: answer.ShapeMarker, Coordinates: []answer.Coordinate{{Lng: 121.5, Lat: 31.25}}},
	}))

	sink := &fakeSink{}
	host := newTestHost(sink, map[uuid.UUID]*question.Question{q.ID: q})

	require.NoError(t, host.LoadQuestion(ctx, q.ID))

	var env Envelope
	select {
	case env = <-host.Out():
	default:
		t.Fatal("expected a LoadQuestion frame")
	}
	assert.Equal(t, MsgLoadQuestion, env.MessageType)

	// The learner-facing frame must never leak grading material.
	raw := string(env.Payload)
	assert.NotContains(t, raw, "reference")
	assert.NotContains(t, raw, "canonical")
	assert.NotContains(t, raw, "secret")
	assert.NotContains(t, raw, "rubric")

	var payload LoadQuestionPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	require.NotNil(t, payload.Question)
	assert.Equal(t, q.ID, payload.Question.ID)
	require.NotNil(t, payload.Question.DrawingConfig)
	assert.Equal(t, 13, payload.Question.DrawingConfig.Zoom)
}

func TestSendNeverBlocks(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	host := newTestHost(sink, nil)

	// Nothing drains Out; every extra frame past the buffer is dropped
	// rather than wedging the caller.
	for i := 0; i < outBufferSize*3; i++ {
		host.RequestSubmit(ctx)
	}
	assert.Len(t, host.out, outBufferSize)
}

func TestReconnectEvictsOldHost(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	shapes := &fakeShapeLoader{shapes: map[uuid.UUID][]answer.DrawingShape{}}
	questions := &fakeQuestionRepo{questions: nil}
	registry := NewRegistry()
	sessionID, learnerID := uuid.New(), uuid.New()

	first := NewHost(sessionID, learnerID, sink, shapes, questions)
	require.Nil(t, registry.Register(first))

	// A reconnect registers a fresh host and closes the displaced one.
	second := NewHost(sessionID, learnerID, sink, shapes, questions)
	old := registry.Register(second)
	require.Same(t, first, old)
	old.Close()

	// The evicted connection's own teardown runs afterwards and closes
	// the same host again.
	assert.NotPanics(t, func() {
		registry.Unregister(first)
		first.Close()
	})

	// A retired host drops frames instead of queueing them.
	first.RequestSubmit(ctx)
	assert.Empty(t, first.out)

	// The newer host stays current and keeps working.
	assert.Same(t, second, registry.Get(sessionID))
	registry.RequestSubmit(ctx, sessionID)
	select {
	case env := <-second.Out():
		assert.Equal(t, MsgRequestSubmit, env.MessageType)
	default:
		t.Fatal("expected a RequestSubmit frame on the live host")
	}
}

func TestRegistryPushesToConnectedSurface(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()

	// No surface connected: pushes are silently dropped.
	registry.RequestSubmit(ctx, uuid.New())
	registry.ClearAnswer(ctx, uuid.New())

	sink := &fakeSink{}
	host := newTestHost(sink, nil)
	registry.Register(host)

	registry.ClearAnswer(ctx, host.sessionID)
	select {
	case env := <-host.Out():
		assert.Equal(t, MsgClearAnswer, env.MessageType)
	default:
		t.Fatal("expected a ClearAnswer frame")
	}
}
