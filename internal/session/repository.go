package session

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/examsys/exam-core/internal/answer"
)

type SessionRepository interface {
	CreateWithAnswers(s *ExamSession, answers []*answer.AnswerRecord) error
	FindByID(id uuid.UUID) (*ExamSession, error)
	FindInProgress(learnerID, paperID uuid.UUID) (*ExamSession, error)
	CountFinished(learnerID, paperID uuid.UUID) (int64, error)
	Update(s *ExamSession) error
	// SaveWithAnswers persists the session and the given answer records in
	// one transaction.
	SaveWithAnswers(s *ExamSession, answers []*answer.AnswerRecord) error
	ListByLearner(learnerID uuid.UUID, status *Status) ([]*ExamSession, error)
	ListByPaper(paperID uuid.UUID) ([]*ExamSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateWithAnswers(s *ExamSession, answers []*answer.AnswerRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		return tx.Create(&answers).Error
	})
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*ExamSession, error) {
	var s ExamSession
	err := r.db.First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) FindInProgress(learnerID, paperID uuid.UUID) (*ExamSession, error) {
	var s ExamSession
	err := r.db.
		Where("learner_id = ? AND paper_id = ? AND status = ?", learnerID, paperID, StatusInProgress).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) CountFinished(learnerID, paperID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&ExamSession{}).
		Where("learner_id = ? AND paper_id = ? AND status IN ?", learnerID, paperID,
			[]Status{StatusSubmitted, StatusGraded, StatusExpired}).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) Update(s *ExamSession) error {
	return r.db.Save(s).Error
}

func (r *sessionRepository) SaveWithAnswers(s *ExamSession, answers []*answer.AnswerRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		for _, a := range answers {
			if err := tx.Save(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) ListByLearner(learnerID uuid.UUID, status *Status) ([]*ExamSession, error) {
	var sessions []*ExamSession
	q := r.db.Where("learner_id = ?", learnerID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) ListByPaper(paperID uuid.UUID) ([]*ExamSession, error) {
	var sessions []*ExamSession
	err := r.db.Where("paper_id = ?", paperID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}
