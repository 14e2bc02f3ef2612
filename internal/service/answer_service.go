package service

import (
	"context"
	"time"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"
	"qa-service-go/internal/repository"
	"qa-service-go/internal/schema"
	"qa-service-go/pkg/database"
	"qa-service-go/pkg/events"
)

// AnswerService 接口定义了回答相关的业务操作。
type AnswerService interface {
	Create(ctx context.Context, questionID int64, req schema.AnswerCreate) (*model.Answer, error)
	Get(ctx context.Context, id int64) (*model.Answer, error)
	Delete(ctx context.Context, id int64) error
}

type answerService struct {
	uow       *database.UnitOfWork
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	publisher events.Publisher
}

// NewAnswerService 创建一个新的 AnswerService 实例。
func NewAnswerService(uow *database.UnitOfWork, questions repository.QuestionRepository, answers repository.AnswerRepository, publisher events.Publisher) AnswerService {
	return &answerService{
		uow:       uow,
		questions: questions,
		answers:   answers,
		publisher: publisher,
	}
}

// Create 为问题添加回答。
// 先在同一事务内检查问题是否存在，以返回 "question not found" 而不是外键错误；
// 检查之后问题被并发删除时，外键冲突以 *errorz.ConstraintViolation 返回。
func (s *answerService) Create(ctx context.Context, questionID int64, req schema.AnswerCreate) (*model.Answer, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     req.UserID,
		Text:       req.Text,
	}
	err := s.uow.Write(ctx, func(ctx context.Context) error {
		exists, err := s.questions.Exists(ctx, questionID)
		if err != nil {
			return err
		}
		if !exists {
			return errorz.NotFound("question")
		}
		return s.answers.Create(ctx, answer)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Type:       events.AnswerCreated,
		QuestionID: answer.QuestionID,
		AnswerID:   answer.ID,
		UserID:     answer.UserID,
		OccurredAt: answer.CreatedAt,
	})
	return answer, nil
}

// Get 返回回答。
func (s *answerService) Get(ctx context.Context, id int64) (*model.Answer, error) {
	var answer *model.Answer
	err := s.uow.Read(ctx, func(ctx context.Context) error {
		var err error
		answer, err = s.answers.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// Delete 删除回答；不存在时返回 errorz.ErrNotFound。
func (s *answerService) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.uow.Write(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.answers.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return errorz.NotFound("answer")
	}

	publish(ctx, s.publisher, events.Event{
		Type:       events.AnswerDeleted,
		AnswerID:   id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
