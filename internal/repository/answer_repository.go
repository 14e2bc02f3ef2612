package repository

import (
	"context"
	"errors"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"
	"qa-service-go/pkg/database"

	"gorm.io/gorm"
)

// AnswerRepository 接口定义了回答的数据操作方法。
type AnswerRepository interface {
	// Create 假定 question_id 有效；外键不存在时返回 *errorz.ConstraintViolation。
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id int64) (*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository 创建一个新的 AnswerRepository 实例。
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return database.TranslateError(database.Conn(ctx, r.db).Create(answer).Error)
}

// FindByID 根据 ID 查找回答。
func (r *answerRepository) FindByID(ctx context.Context, id int64) (*model.Answer, error) {
	var answer model.Answer
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("answer")
		}
		return nil, err
	}
	return &answer, nil
}

// ListByQuestion 按 (question_id, created_at) 索引顺序返回某个问题的回答。
func (r *answerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	answers := make([]model.Answer, 0)
	err := database.Conn(ctx, r.db).
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&answers).Error
	return answers, err
}

// Delete 删除回答，返回是否确实删除了记录。
func (r *answerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.Answer{})
	if result.Error != nil {
		return false, database.TranslateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}
