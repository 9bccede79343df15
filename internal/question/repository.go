package question

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(q *Question) error
	FindByID(id uuid.UUID) (*Question, error)
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(q *Question) error {
	return r.db.Create(q).Error
}

func (r *questionRepository) FindByID(id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*Question, error) {
	var questions []*Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}
