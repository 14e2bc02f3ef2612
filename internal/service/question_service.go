// Package service 包含了应用的业务逻辑层。
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
	"qa-service-go/pkg/log"
)

// QuestionService 接口定义了问题相关的业务操作。
// 每次调用对应一个请求、一个事务；校验在事务开启之前完成。
type QuestionService interface {
	Create(ctx context.Context, req schema.QuestionCreate) (*model.Question, error)
	Get(ctx context.Context, id int64, withAnswers bool) (*model.Question, error)
	List(ctx context.Context, params schema.ListQuestions) ([]model.Question, error)
	Delete(ctx context.Context, id int64) error
}

type questionService struct {
	uow       *database.UnitOfWork
	questions repository.QuestionRepository
	publisher events.Publisher
	maxLimit  int
}

// NewQuestionService 创建一个新的 QuestionService 实例。
func NewQuestionService(uow *database.UnitOfWork, questions repository.QuestionRepository, publisher events.Publisher, maxLimit int) QuestionService {
	return &questionService{
		uow:       uow,
		questions: questions,
		publisher: publisher,
		maxLimit:  maxLimit,
	}
}

// Create 校验并创建问题。
func (s *questionService) Create(ctx context.Context, req schema.QuestionCreate) (*model.Question, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	question := &model.Question{Text: req.Text}
	err := s.uow.Write(ctx, func(ctx context.Context) error {
		return s.questions.Create(ctx, question)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Type:       events.QuestionCreated,
		QuestionID: question.ID,
		OccurredAt: question.CreatedAt,
	})
	return question, nil
}

// Get 返回问题，withAnswers 为 true 时一并返回回答。
func (s *questionService) Get(ctx context.Context, id int64, withAnswers bool) (*model.Question, error) {
	var question *model.Question
	err := s.uow.Read(ctx, func(ctx context.Context) error {
		var err error
		question, err = s.questions.FindByID(ctx, id, withAnswers)
		return err
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// List 分页返回问题，最新的在前。
func (s *questionService) List(ctx context.Context, params schema.ListQuestions) ([]model.Question, error) {
	if err := params.Normalize(s.maxLimit); err != nil {
		return nil, err
	}

	var questions []model.Question
	err := s.uow.Read(ctx, func(ctx context.Context) error {
		var err error
		questions, err = s.questions.List(ctx, params.Limit, params.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Delete 删除问题及其全部回答；问题不存在时返回 errorz.ErrNotFound。
func (s *questionService) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.uow.Write(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.questions.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return errorz.NotFound("question")
	}

	publish(ctx, s.publisher, events.Event{
		Type:       events.QuestionDeleted,
		QuestionID: id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// publish 在事务提交之后投递事件，失败只记录日志，不影响已提交的结果。
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warnw("publish event failed", "type", event.Type, "questionID", event.QuestionID, "answerID", event.AnswerID, "error", err)
	}
}
