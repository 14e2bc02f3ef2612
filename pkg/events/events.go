// Package events 定义了事务提交后对外投递的领域事件。
package events

import (
	"context"
	"strconv"
	"time"
)

// Type 是领域事件的类型。
type Type string

const (
	QuestionCreated Type = "question.created"
	QuestionDeleted Type = "question.deleted"
	AnswerCreated   Type = "answer.created"
	AnswerDeleted   Type = "answer.deleted"
)

// Event 是投递到消息队列的事件结构。
type Event struct {
	Type       Type      `json:"type"`
	QuestionID int64     `json:"question_id,omitempty"`
	AnswerID   int64     `json:"answer_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key 返回分区键，同一问题的事件落在同一分区以保持顺序。
func (e Event) Key() string {
	if e.QuestionID != 0 {
		return "question:" + strconv.FormatInt(e.QuestionID, 10)
	}
	return "answer:" + strconv.FormatInt(e.AnswerID, 10)
}

// Publisher 投递领域事件。
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop 丢弃所有事件，未配置消息队列时使用。
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
