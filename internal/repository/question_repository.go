// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"context"
	"errors"
	"time"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"
	"qa-service-go/pkg/database"

	"gorm.io/gorm"
)

// QuestionRepository 接口定义了问题的数据操作方法。
// 所有方法通过 ctx 加入当前请求的事务。
type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id int64, withAnswers bool) (*model.Question, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]model.Question, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository 创建一个新的 QuestionRepository 实例。
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create 插入一个新问题，ID 与 CreatedAt 会回填到 question 中。
func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return database.TranslateError(database.Conn(ctx, r.db).Create(question).Error)
}

// FindByID 根据 ID 查找问题。withAnswers 为 true 时用一次 LEFT JOIN 同时取回全部回答。
func (r *questionRepository) FindByID(ctx context.Context, id int64, withAnswers bool) (*model.Question, error) {
	if withAnswers {
		return r.findWithAnswers(ctx, id)
	}

	var question model.Question
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("question")
		}
		return nil, err
	}
	return &question, nil
}

// questionAnswerRow 是问题与回答 LEFT JOIN 的一行，没有回答时 answer 列为 NULL。
type questionAnswerRow struct {
	QuestionID        int64
	QuestionText      string
	QuestionCreatedAt time.Time
	AnswerID          *int64
	AnswerUserID      *string
	AnswerText        *string
	AnswerCreatedAt   *time.Time
}

func (r *questionRepository) findWithAnswers(ctx context.Context, id int64) (*model.Question, error) {
	var rows []questionAnswerRow
	err := database.Conn(ctx, r.db).
		Table("questions AS q").
		Select("q.id AS question_id, q.text AS question_text, q.created_at AS question_created_at, " +
			"a.id AS answer_id, a.user_id AS answer_user_id, a.text AS answer_text, a.created_at AS answer_created_at").
		Joins("LEFT JOIN answers AS a ON a.question_id = q.id").
		Where("q.id = ?", id).
		Order("a.created_at ASC").
		Order("a.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errorz.NotFound("question")
	}

	question := &model.Question{
		ID:        rows[0].QuestionID,
		Text:      rows[0].QuestionText,
		CreatedAt: rows[0].QuestionCreatedAt,
		Answers:   make([]model.Answer, 0, len(rows)),
	}
	for _, row := range rows {
		if row.AnswerID == nil {
			continue
		}
		answer := model.Answer{ID: *row.AnswerID, QuestionID: question.ID}
		if row.AnswerUserID != nil {
			answer.UserID = *row.AnswerUserID
		}
		if row.AnswerText != nil {
			answer.Text = *row.AnswerText
		}
		if row.AnswerCreatedAt != nil {
			answer.CreatedAt = *row.AnswerCreatedAt
		}
		question.Answers = append(question.Answers, answer)
	}
	return question, nil
}

// Exists 判断问题是否存在。
func (r *questionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&model.Question{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 按创建时间倒序分页返回问题，ID 倒序作为相同时间戳时的稳定次序。
func (r *questionRepository) List(ctx context.Context, limit, offset int) ([]model.Question, error) {
	questions := make([]model.Question, 0)
	err := database.Conn(ctx, r.db).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, err
}

// Delete 删除问题，回答由外键 ON DELETE CASCADE 在同一事务内删除。
// 返回是否确实删除了记录。
func (r *questionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.Question{})
	if result.Error != nil {
		return false, database.TranslateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}
