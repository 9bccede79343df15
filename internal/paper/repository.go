package paper

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaperRepository interface {
	Create(p *ExamPaper) error
	FindByID(id uuid.UUID) (*ExamPaper, error)
	FindWithQuestions(id uuid.UUID) (*ExamPaper, error)
}

type paperRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(p *ExamPaper) error {
	return r.db.Create(p).Error
}

func (r *paperRepository) FindByID(id uuid.UUID) (*ExamPaper, error) {
	var p ExamPaper
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *paperRepository) FindWithQuestions(id uuid.UUID) (*ExamPaper, error) {
	var p ExamPaper
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Questions.Question").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
