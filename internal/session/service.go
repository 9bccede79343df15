package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/grading"
	"github.com/examsys/exam-core/internal/paper"
	"github.com/examsys/exam-core/internal/question"
	util "github.com/examsys/exam-core/internal/utils"
)

var (
	ErrPaperNotAvailable  = errors.New("exam paper is not available")
	ErrAlreadyInProgress  = errors.New("an in-progress session already exists for this paper")
	ErrRetakeNotAllowed   = errors.New("this paper does not allow retakes")
	ErrSessionNotFound    = errors.New("exam session not found")
	ErrNotOwner           = errors.New("session belongs to another learner")
	ErrSessionNotActive   = errors.New("exam session is not active")
	ErrQuestionNotInPaper = errors.New("question is not part of this paper")
	ErrAnswerTypeMismatch = errors.New("answer payload does not match the question type")
	ErrAnswerNotFound     = errors.New("answer record not found")
	ErrAlreadyGraded      = errors.New("answer has already been graded")
	ErrInvalidShape       = errors.New("invalid shape payload")
)

// clockSkewToleranceSeconds absorbs client/server drift when accepting
// reported countdown values.
const clockSkewToleranceSeconds = 5

// SurfaceNotifier pushes control frames to a learner's connected
// drawing surface. Delivery is best effort: when no surface is
// connected the push is dropped.
type SurfaceNotifier interface {
	RequestSubmit(ctx context.Context, sessionID uuid.UUID)
	ClearAnswer(ctx context.Context, sessionID uuid.UUID)
}

type AutoGradeResult struct {
	Breakdown grading.Breakdown   `json:"breakdown"`
	Report    grading.MatchReport `json:"report"`
	Summary   *ScoreSummary       `json:"summary"`
}

type SessionService interface {
	Start(ctx context.Context, learnerID, paperID uuid.UUID) (*ExamSession, error)
	Resume(ctx context.Context, sessionID, learnerID uuid.UUID) (*ExamSession, error)
	RecordAnswer(ctx context.Context, sessionID, learnerID, questionID uuid.UUID, sub AnswerSubmission) error
	UpdateRemainingTime(ctx context.Context, sessionID, learnerID uuid.UUID, reportedSeconds int) error
	Submit(ctx context.Context, sessionID, learnerID uuid.UUID) (*ScoreSummary, error)
	GetAnswers(ctx context.Context, sessionID, learnerID uuid.UUID) ([]*answer.AnswerRecord, error)
	GetScoreSummary(ctx context.Context, sessionID, learnerID uuid.UUID) (*ScoreSummary, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID, status *Status) ([]*ExamSession, error)
	ApplyRubric(ctx context.Context, answerID, graderID uuid.UUID, b grading.Breakdown, regrade bool) (*ScoreSummary, error)
	AutoGradeDrawing(ctx context.Context, answerID, graderID uuid.UUID, regrade bool) (*AutoGradeResult, error)
	AnswerStatistics(ctx context.Context, answerID uuid.UUID) (answer.Statistics, error)
	PaperStatistics(ctx context.Context, paperID uuid.UUID) (*PaperStatistics, error)
}

type sessionService struct {
	sessions  SessionRepository
	answers   answer.AnswerRepository
	papers    paper.PaperRepository
	questions question.QuestionRepository

	// locks serializes all mutations of a single session.
	locks *util.KeyedMutex

	surface   SurfaceNotifier
	autoGrade grading.AutoGradeConfig
	now       func() time.Time
}

func NewSessionService(
	sessions SessionRepository,
	answers answer.AnswerRepository,
	papers paper.PaperRepository,
	questions question.QuestionRepository,
	surface SurfaceNotifier,
	autoGrade grading.AutoGradeConfig,
) SessionService {
	return &sessionService{
		sessions:  sessions,
		answers:   answers,
		papers:    papers,
		questions: questions,
		locks:     util.NewKeyedMutex(),
		surface:   surface,
		autoGrade: autoGrade,
		now:       time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, learnerID, paperID uuid.UUID) (*ExamSession, error) {
	s.locks.Lock(learnerID)
	defer s.locks.Unlock(learnerID)

	log := config.WithContext(ctx).WithField("learner_id", learnerID).WithField("paper_id", paperID)
	now := s.now()

	p, err := s.papers.FindWithQuestions(paperID)
	if err != nil {
		log.WithError(err).Error("failed to load exam paper")
		return nil, err
	}
	if p == nil || !p.IsPublished || !p.AvailableAt(now) {
		return nil, ErrPaperNotAvailable
	}

	existing, err := s.sessions.FindInProgress(learnerID, paperID)
	if err != nil {
		log.WithError(err).Error("failed to check for an in-progress session")
		return nil, err
	}
	if existing != nil {
		if !existing.ExpiredAt(p, now) {
			return nil, ErrAlreadyInProgress
		}
		// Expired but never submitted. Finalize it here so the retake
		// check below sees it as finished. The stale session's own lock
		// must be held: answer intake serializes on it, and finalizing
		// outside it lets a concurrent write resurrect the session.
		if err := s.finalizeStale(ctx, existing.ID, p, now); err != nil {
			return nil, err
		}
	}

	finished, err := s.sessions.CountFinished(learnerID, paperID)
	if err != nil {
		log.WithError(err).Error("failed to count finished sessions")
		return nil, err
	}
	if finished > 0 && !p.AllowRetake {
		return nil, ErrRetakeNotAllowed
	}

	sess := &ExamSession{
		ID:            uuid.New(),
		LearnerID:     learnerID,
		PaperID:       paperID,
		Status:        StatusInProgress,
		StartTime:     &now,
		RemainingTime: int(p.Duration().Seconds()),
		TotalCount:    len(p.Questions),
	}

	// One blank record per question up front, so answer intake is always
	// an update and the grader sees unanswered questions explicitly.
	records := make([]*answer.AnswerRecord, 0, len(p.Questions))
	for _, pq := range p.Questions {
		records = append(records, &answer.AnswerRecord{
			ID:         uuid.New(),
			SessionID:  sess.ID,
			QuestionID: pq.QuestionID,
		})
	}

	if err := s.sessions.CreateWithAnswers(sess, records); err != nil {
		log.WithError(err).Error("failed to create exam session")
		return nil, err
	}

	log.WithField("session_id", sess.ID).Info("exam session started")
	return sess, nil
}

func (s *sessionService) Resume(ctx context.Context, sessionID, learnerID uuid.UUID) (*ExamSession, error) {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, p, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if sess.ExpiredAt(p, now) {
		if err := s.finalize(ctx, sess, p, now); err != nil {
			return nil, err
		}
		return sess, nil
	}
	if sess.Status == StatusInProgress {
		sess.RemainingTime = sess.RemainingAt(p, now)
	}
	return sess, nil
}

func (s *sessionService) RecordAnswer(ctx context.Context, sessionID, learnerID, questionID uuid.UUID, sub AnswerSubmission) error {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, p, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return err
	}

	now := s.now()
	if sess.ExpiredAt(p, now) {
		if err := s.finalize(ctx, sess, p, now); err != nil {
			return err
		}
		return ErrSessionNotActive
	}
	if sess.Status != StatusInProgress {
		return ErrSessionNotActive
	}

	pq := findPaperQuestion(p, questionID)
	if pq == nil {
		return ErrQuestionNotInPaper
	}
	q := &pq.Question

	ans, err := s.answers.FindBySessionAndQuestion(sessionID, questionID)
	if err != nil {
		return err
	}
	if ans == nil {
		return ErrAnswerNotFound
	}

	if q.Type == question.TypeMapDrawing {
		if err := s.recordDrawing(ans, q, sub); err != nil {
			return err
		}
	} else {
		if sub.Value == nil || len(sub.Shapes) > 0 {
			return ErrAnswerTypeMismatch
		}
		ans.RawAnswer = sub.Value
		// Provisional grade; the final pass at submit time sets IsGraded.
		if res, gerr := grading.Grade(q.Type, q.CanonicalAnswer, *sub.Value, pq.Score, q.CaseSensitive); gerr == nil {
			ans.Score = res.Score
			ans.IsCorrect = res.IsCorrect
		}
	}

	ans.AnsweredAt = &now
	if err := s.answers.Update(ans); err != nil {
		config.WithContext(ctx).WithError(err).Error("failed to persist answer")
		return err
	}

	sess.RemainingTime = sess.RemainingAt(p, now)
	if err := s.sessions.Update(sess); err != nil {
		return err
	}

	config.WithContext(ctx).WithFields(map[string]interface{}{
		"session_id":  sessionID,
		"question_id": questionID,
		"auto_save":   sub.AutoSave,
	}).Info("answer recorded")
	return nil
}

func (s *sessionService) recordDrawing(ans *answer.AnswerRecord, q *question.Question, sub AnswerSubmission) error {
	if sub.Value != nil {
		return ErrAnswerTypeMismatch
	}

	cfg, err := q.DrawingConfig()
	if err != nil {
		return err
	}
	for i, sh := range sub.Shapes {
		if err := sh.Validate(); err != nil {
			return fmt.Errorf("%w: shape %d: %v", ErrInvalidShape, i, err)
		}
		if !cfg.AllowsKind(sh.Kind) {
			return fmt.Errorf("%w: shape %d: kind %s is not allowed here", ErrInvalidShape, i, sh.Kind)
		}
	}
	if cfg != nil && cfg.Constraints != nil && cfg.Constraints.MaxShapes > 0 && len(sub.Shapes) > cfg.Constraints.MaxShapes {
		return fmt.Errorf("%w: at most %d shapes allowed", ErrInvalidShape, cfg.Constraints.MaxShapes)
	}

	count, err := s.answers.ReplaceShapes(ans.ID, sub.Shapes)
	if err != nil {
		return err
	}

	view := answer.DrawingSummaryView{
		ShapeCount: count,
		ByKind:     map[answer.ShapeKind]int{},
	}
	if cfg != nil {
		view.Center = &cfg.Center
		view.Zoom = cfg.Zoom
	}
	for _, sh := range sub.Shapes {
		view.ByKind[sh.Kind]++
	}
	if err := ans.SetDrawingSummary(&view); err != nil {
		return err
	}
	if sub.DrawDurationSeconds > 0 {
		ans.DrawDurationSeconds = sub.DrawDurationSeconds
	}
	return nil
}

func (s *sessionService) UpdateRemainingTime(ctx context.Context, sessionID, learnerID uuid.UUID, reportedSeconds int) error {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, p, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return err
	}

	now := s.now()
	if sess.ExpiredAt(p, now) {
		// Silent expiry. The next read reports the session as submitted.
		return s.finalize(ctx, sess, p, now)
	}
	if sess.Status != StatusInProgress {
		return ErrSessionNotActive
	}

	accepted := reportedSeconds
	if accepted < 0 {
		accepted = 0
	}
	if server := sess.RemainingAt(p, now) + clockSkewToleranceSeconds; accepted > server {
		accepted = server
	}
	// The countdown never climbs back up.
	if sess.RemainingTime > 0 && accepted > sess.RemainingTime {
		accepted = sess.RemainingTime
	}
	sess.RemainingTime = accepted
	return s.sessions.Update(sess)
}

func (s *sessionService) Submit(ctx context.Context, sessionID, learnerID uuid.UUID) (*ScoreSummary, error) {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, p, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		return summaryOf(sess), nil
	}
	if sess.Status != StatusInProgress {
		return nil, ErrSessionNotActive
	}

	// Give a connected drawing surface a chance to flush its last
	// strokes. The flush races the finalize; strokes that arrive late
	// are rejected like any other post-submit write.
	if s.surface != nil {
		s.surface.RequestSubmit(ctx, sessionID)
	}

	now := s.now()
	if err := s.finalize(ctx, sess, p, now); err != nil {
		return nil, err
	}
	if s.surface != nil {
		s.surface.ClearAnswer(ctx, sessionID)
	}
	config.WithContext(ctx).WithFields(map[string]interface{}{
		"session_id":  sessionID,
		"total_score": sess.TotalScore,
		"status":      sess.Status,
	}).Info("exam session submitted")
	return summaryOf(sess), nil
}

func (s *sessionService) GetAnswers(ctx context.Context, sessionID, learnerID uuid.UUID) ([]*answer.AnswerRecord, error) {
	sess, _, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return nil, err
	}
	return s.answers.FindAllBySession(sess.ID)
}

func (s *sessionService) GetScoreSummary(ctx context.Context, sessionID, learnerID uuid.UUID) (*ScoreSummary, error) {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, p, err := s.loadOwned(ctx, sessionID, learnerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if sess.ExpiredAt(p, now) {
		if err := s.finalize(ctx, sess, p, now); err != nil {
			return nil, err
		}
	}
	if !sess.Status.Terminal() {
		return nil, ErrSessionNotActive
	}
	return summaryOf(sess), nil
}

func (s *sessionService) ListByLearner(ctx context.Context, learnerID uuid.UUID, status *Status) ([]*ExamSession, error) {
	return s.sessions.ListByLearner(learnerID, status)
}

func (s *sessionService) ApplyRubric(ctx context.Context, answerID, graderID uuid.UUID, b grading.Breakdown, regrade bool) (*ScoreSummary, error) {
	ans, err := s.answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	if ans == nil {
		return nil, ErrAnswerNotFound
	}

	s.locks.Lock(ans.SessionID)
	defer s.locks.Unlock(ans.SessionID)

	sess, p, pq, err := s.loadForGrading(ctx, ans)
	if err != nil {
		return nil, err
	}
	if ans.IsGraded && !regrade {
		return nil, ErrAlreadyGraded
	}

	now := s.now()
	if err := s.storeGrade(ctx, sess, p, ans, pq, b, &graderID, now); err != nil {
		return nil, err
	}
	config.WithContext(ctx).WithFields(map[string]interface{}{
		"answer_id":  answerID,
		"grader_id":  graderID,
		"score":      ans.Score,
		"session_id": sess.ID,
	}).Info("rubric grade applied")
	return summaryOf(sess), nil
}

func (s *sessionService) AutoGradeDrawing(ctx context.Context, answerID, graderID uuid.UUID, regrade bool) (*AutoGradeResult, error) {
	ans, err := s.answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	if ans == nil {
		return nil, ErrAnswerNotFound
	}

	s.locks.Lock(ans.SessionID)
	defer s.locks.Unlock(ans.SessionID)

	sess, p, pq, err := s.loadForGrading(ctx, ans)
	if err != nil {
		return nil, err
	}
	if ans.IsGraded && !regrade {
		return nil, ErrAlreadyGraded
	}

	q := &pq.Question
	if q.Type != question.TypeMapDrawing {
		return nil, ErrAnswerTypeMismatch
	}
	reference, err := q.ReferenceShapes()
	if err != nil {
		return nil, err
	}
	rows, err := s.answers.GetShapes(ans.ID)
	if err != nil {
		return nil, err
	}
	submitted := make([]answer.Shape, 0, len(rows))
	for _, row := range rows {
		sh, err := row.ToShape()
		if err != nil {
			return nil, err
		}
		submitted = append(submitted, sh)
	}

	breakdown, report := grading.AutoGrade(submitted, reference, pq.Score, s.autoGrade)

	now := s.now()
	if err := s.storeGrade(ctx, sess, p, ans, pq, breakdown, &graderID, now); err != nil {
		return nil, err
	}
	config.WithContext(ctx).WithFields(map[string]interface{}{
		"answer_id": answerID,
		"matched":   report.Matched,
		"missing":   report.Missing,
		"score":     ans.Score,
	}).Info("drawing auto-graded")
	return &AutoGradeResult{Breakdown: breakdown, Report: report, Summary: summaryOf(sess)}, nil
}

// AnswerStatistics aggregates the live shape set of one drawn answer
// for the reviewer surface.
func (s *sessionService) AnswerStatistics(ctx context.Context, answerID uuid.UUID) (answer.Statistics, error) {
	ans, err := s.answers.FindByID(answerID)
	if err != nil {
		return answer.Statistics{}, err
	}
	if ans == nil {
		return answer.Statistics{}, ErrAnswerNotFound
	}
	return s.answers.ComputeStatistics(ans.ID)
}

func (s *sessionService) PaperStatistics(ctx context.Context, paperID uuid.UUID) (*PaperStatistics, error) {
	sessions, err := s.sessions.ListByPaper(paperID)
	if err != nil {
		return nil, err
	}

	stats := &PaperStatistics{PaperID: paperID}
	var gradedCount int
	var sum float64
	for _, sess := range sessions {
		stats.TotalParticipants++
		if sess.Status.Terminal() {
			stats.CompletedCount++
		}
		if sess.Status != StatusGraded {
			continue
		}
		gradedCount++
		sum += sess.TotalScore
		if sess.IsPassed {
			stats.PassedCount++
		}
		if gradedCount == 1 || sess.TotalScore > stats.HighestScore {
			stats.HighestScore = sess.TotalScore
		}
		if gradedCount == 1 || sess.TotalScore < stats.LowestScore {
			stats.LowestScore = sess.TotalScore
		}
	}
	if gradedCount > 0 {
		stats.AverageScore = sum / float64(gradedCount)
		stats.PassRate = float64(stats.PassedCount) / float64(gradedCount)
	}
	return stats, nil
}

// loadOwned fetches a session and its paper, enforcing ownership.
func (s *sessionService) loadOwned(ctx context.Context, sessionID, learnerID uuid.UUID) (*ExamSession, *paper.ExamPaper, error) {
	sess, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	if sess.LearnerID != learnerID {
		return nil, nil, ErrNotOwner
	}
	p, err := s.papers.FindWithQuestions(sess.PaperID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, ErrPaperNotAvailable
	}
	return sess, p, nil
}

// loadForGrading resolves the session, paper and paper-question for an
// answer record, finalizing the session first when its window elapsed.
// Grading requires a submitted session.
func (s *sessionService) loadForGrading(ctx context.Context, ans *answer.AnswerRecord) (*ExamSession, *paper.ExamPaper, *paper.PaperQuestion, error) {
	sess, err := s.sessions.FindByID(ans.SessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if sess == nil {
		return nil, nil, nil, ErrSessionNotFound
	}
	p, err := s.papers.FindWithQuestions(sess.PaperID)
	if err != nil {
		return nil, nil, nil, err
	}
	if p == nil {
		return nil, nil, nil, ErrPaperNotAvailable
	}
	now := s.now()
	if sess.ExpiredAt(p, now) {
		if err := s.finalize(ctx, sess, p, now); err != nil {
			return nil, nil, nil, err
		}
	}
	if sess.Status == StatusInProgress || sess.Status == StatusNotStarted {
		return nil, nil, nil, ErrSessionNotActive
	}
	pq := findPaperQuestion(p, ans.QuestionID)
	if pq == nil {
		return nil, nil, nil, ErrQuestionNotInPaper
	}
	return sess, p, pq, nil
}

// storeGrade writes one grade onto an answer and refreshes the
// session's aggregate scores, advancing it to graded when every answer
// has a grade.
func (s *sessionService) storeGrade(ctx context.Context, sess *ExamSession, p *paper.ExamPaper, ans *answer.AnswerRecord, pq *paper.PaperQuestion, b grading.Breakdown, graderID *uuid.UUID, now time.Time) error {
	encoded, err := b.Encode()
	if err != nil {
		return err
	}
	ans.Score = b.ClampedTotal(pq.Score)
	ans.IsGraded = true
	ans.GradeTime = &now
	ans.GraderID = graderID
	ans.RubricBreakdown = encoded

	all, err := s.answers.FindAllBySession(sess.ID)
	if err != nil {
		return err
	}
	for i, a := range all {
		if a.ID == ans.ID {
			all[i] = ans
		}
	}
	s.applyAggregates(sess, p, all, now)
	return s.sessions.SaveWithAnswers(sess, []*answer.AnswerRecord{ans})
}

// finalize grades every objective answer, rolls the aggregates up and
// moves the session to submitted (or straight to graded when no
// subjective questions remain).
// finalizeStale takes the session lock, re-reads the session, and
// finalizes it only if it is still an expired in-progress session.
// Callers hold the learner lock; answer intake only ever takes the
// session lock, so the ordering cannot deadlock.
func (s *sessionService) finalizeStale(ctx context.Context, sessionID uuid.UUID, p *paper.ExamPaper, now time.Time) error {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return err
	}
	if sess == nil || !sess.ExpiredAt(p, now) {
		return nil
	}
	return s.finalize(ctx, sess, p, now)
}

func (s *sessionService) finalize(ctx context.Context, sess *ExamSession, p *paper.ExamPaper, now time.Time) error {
	all, err := s.answers.FindAllBySession(sess.ID)
	if err != nil {
		return err
	}

	pqByQuestion := paperQuestionIndex(p)
	changed := make([]*answer.AnswerRecord, 0, len(all))
	for _, a := range all {
		if a.IsGraded {
			continue
		}
		pq, ok := pqByQuestion[a.QuestionID]
		if !ok {
			continue
		}
		q := &pq.Question
		submitted := ""
		if a.RawAnswer != nil {
			submitted = *a.RawAnswer
		}
		res, err := grading.Grade(q.Type, q.CanonicalAnswer, submitted, pq.Score, q.CaseSensitive)
		if errors.Is(err, grading.ErrNotObjective) {
			continue
		}
		if err != nil {
			return err
		}
		a.Score = res.Score
		a.IsCorrect = res.IsCorrect
		a.IsGraded = true
		a.GradeTime = &now
		changed = append(changed, a)
	}

	if sess.SubmitTime == nil {
		sess.SubmitTime = &now
	}
	sess.EndTime = &now
	sess.Status = StatusSubmitted
	sess.RemainingTime = sess.RemainingAt(p, now)
	s.applyAggregates(sess, p, all, now)

	return s.sessions.SaveWithAnswers(sess, changed)
}

// applyAggregates recomputes the session's score rollup from its answer
// records. Sessions advance to graded only when every answer carries a
// grade.
func (s *sessionService) applyAggregates(sess *ExamSession, p *paper.ExamPaper, all []*answer.AnswerRecord, now time.Time) {
	pqByQuestion := paperQuestionIndex(p)

	var objective, subjective float64
	var correct int
	allGraded := len(all) > 0
	for _, a := range all {
		pq, ok := pqByQuestion[a.QuestionID]
		if !ok {
			continue
		}
		if !a.IsGraded {
			allGraded = false
			continue
		}
		if pq.Question.Type.IsObjective() {
			objective += a.Score
		} else {
			subjective += a.Score
		}
		if a.IsCorrect {
			correct++
		}
	}

	sess.ObjectiveScore = objective
	sess.SubjectiveScore = subjective
	sess.TotalScore = objective + subjective
	sess.CorrectCount = correct
	sess.TotalCount = len(p.Questions)

	if allGraded && sess.Status.Terminal() {
		sess.Status = StatusGraded
		sess.GradedAt = &now
		sess.IsPassed = sess.TotalScore >= p.EffectivePassScore()
	}
}

func findPaperQuestion(p *paper.ExamPaper, questionID uuid.UUID) *paper.PaperQuestion {
	for i := range p.Questions {
		if p.Questions[i].QuestionID == questionID {
			return &p.Questions[i]
		}
	}
	return nil
}

func paperQuestionIndex(p *paper.ExamPaper) map[uuid.UUID]*paper.PaperQuestion {
	idx := make(map[uuid.UUID]*paper.PaperQuestion, len(p.Questions))
	for i := range p.Questions {
		idx[p.Questions[i].QuestionID] = &p.Questions[i]
	}
	return idx
}
