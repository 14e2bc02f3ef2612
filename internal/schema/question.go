package schema

import (
	"strconv"
	"strings"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"
)

const (
	// MaxQuestionTextLength 与 questions.text 列宽一致。
	MaxQuestionTextLength = 500
)

// QuestionCreate 是创建问题的请求体。
type QuestionCreate struct {
	Text string `json:"text" validate:"required,max=500"`
}

// Normalize 去除首尾空白后校验：不能为空，长度按去除空白后的字符数计算。
func (q *QuestionCreate) Normalize() error {
	q.Text = strings.TrimSpace(q.Text)
	return check(q)
}

// ListQuestions 是问题列表的分页参数。
type ListQuestions struct {
	Limit  int `form:"limit" validate:"min=1"`
	Offset int `form:"offset" validate:"min=0"`
}

// Normalize 校验分页参数，limit 不能超过 maxLimit。
func (p *ListQuestions) Normalize(maxLimit int) error {
	if err := check(p); err != nil {
		return err
	}
	if p.Limit > maxLimit {
		return errorz.NewValidationError("limit", "must be at most "+strconv.Itoa(maxLimit))
	}
	return nil
}

// QuestionListItem 是问题列表中的一项。
type QuestionListItem struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	CreatedAt model.Timestamp `json:"created_at"`
}

// QuestionDetail 是问题详情，附带按创建时间排序的回答。
type QuestionDetail struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	CreatedAt model.Timestamp  `json:"created_at"`
	Answers   []AnswerShortOut `json:"answers"`
}

// NewQuestionListItems 把模型转换为列表响应。
func NewQuestionListItems(questions []model.Question) []QuestionListItem {
	items := make([]QuestionListItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, QuestionListItem{
			ID:        q.ID,
			Text:      q.Text,
			CreatedAt: model.Timestamp(q.CreatedAt),
		})
	}
	return items
}

// NewQuestionDetail 把模型转换为详情响应，没有回答时 answers 为空数组。
func NewQuestionDetail(q *model.Question) QuestionDetail {
	answers := make([]AnswerShortOut, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, AnswerShortOut{
			ID:        a.ID,
			UserID:    a.UserID,
			Text:      a.Text,
			CreatedAt: model.Timestamp(a.CreatedAt),
		})
	}
	return QuestionDetail{
		ID:        q.ID,
		Text:      q.Text,
		CreatedAt: model.Timestamp(q.CreatedAt),
		Answers:   answers,
	}
}
