package answer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	util "github.com/examsys/exam-core/internal/utils"
)

// AnswerRepository is the durable store for answer records and their
// versioned drawing sub-store. It carries no session semantics.
type AnswerRepository interface {
	Create(a *AnswerRecord) error
	CreateBatch(answers []*AnswerRecord) error
	Update(a *AnswerRecord) error
	FindByID(id uuid.UUID) (*AnswerRecord, error)
	FindBySessionAndQuestion(sessionID, questionID uuid.UUID) (*AnswerRecord, error)
	FindAllBySession(sessionID uuid.UUID) ([]*AnswerRecord, error)

	// ReplaceShapes atomically tombstones the live generation for
	// answerID and inserts shapes as the new one. Calls for the same
	// answer id are serialized; concurrent generations never interleave.
	ReplaceShapes(answerID uuid.UUID, shapes []Shape) (int, error)
	GetShapes(answerID uuid.UUID) ([]DrawingShape, error)
	ComputeStatistics(answerID uuid.UUID) (Statistics, error)
}

type answerRepository struct {
	db    *gorm.DB
	locks *util.KeyedMutex
}

func NewRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db, locks: util.NewKeyedMutex()}
}

func (r *answerRepository) Create(a *AnswerRecord) error {
	return r.db.Create(a).Error
}

func (r *answerRepository) CreateBatch(answers []*AnswerRecord) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(&answers).Error
}

func (r *answerRepository) Update(a *AnswerRecord) error {
	return r.db.Save(a).Error
}

func (r *answerRepository) FindByID(id uuid.UUID) (*AnswerRecord, error) {
	var a AnswerRecord
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *answerRepository) FindBySessionAndQuestion(sessionID, questionID uuid.UUID) (*AnswerRecord, error) {
	var a AnswerRecord
	err := r.db.First(&a, "session_id = ? AND question_id = ?", sessionID, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *answerRepository) FindAllBySession(sessionID uuid.UUID) ([]*AnswerRecord, error) {
	var answers []*AnswerRecord
	if err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) ReplaceShapes(answerID uuid.UUID, shapes []Shape) (int, error) {
	r.locks.Lock(answerID)
	defer r.locks.Unlock(answerID)

	now := time.Now()

	rows := make([]DrawingShape, 0, len(shapes))
	for i, s := range shapes {
		row, err := s.toRow(answerID, i, now)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DrawingShape{}).
			Where("answer_id = ? AND tombstoned = false", answerID).
			Updates(map[string]interface{}{"tombstoned": true, "updated_at": now}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (r *answerRepository) GetShapes(answerID uuid.UUID) ([]DrawingShape, error) {
	var shapes []DrawingShape
	if err := r.db.
		Where("answer_id = ? AND tombstoned = false", answerID).
		Order("order_index ASC, created_at ASC").
		Find(&shapes).Error; err != nil {
		return nil, err
	}
	return shapes, nil
}

func (r *answerRepository) ComputeStatistics(answerID uuid.UUID) (Statistics, error) {
	shapes, err := r.GetShapes(answerID)
	if err != nil {
		return Statistics{}, err
	}
	return StatisticsFromShapes(shapes), nil
}
