package schema

import (
	"strings"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"

	"github.com/google/uuid"
)

const (
	// MaxAnswerTextLength 与 answers.text 列宽一致。
	MaxAnswerTextLength = 1000
)

// UserIDNamespace 是由任意字符串派生 user_id 时使用的 UUID5 命名空间。
// 使用公开的 DNS 命名空间，不同部署对同一用户名会得到相同的 UUID。
var UserIDNamespace = uuid.NameSpaceDNS

// AnswerCreate 是创建回答的请求体。
type AnswerCreate struct {
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=1000"`
}

// Normalize 去除首尾空白并校验，随后把 user_id 规范化为小写 UUID。
func (a *AnswerCreate) Normalize() error {
	a.UserID = strings.TrimSpace(a.UserID)
	a.Text = strings.TrimSpace(a.Text)
	if err := check(a); err != nil {
		return err
	}
	a.UserID = userIDFromTrimmed(a.UserID)
	return nil
}

// NormalizeUserID 把任意非空字符串映射为小写 UUID：
// 合法 UUID 原样规范化，其他字符串派生确定性的 UUID5。
func NormalizeUserID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errorz.NewValidationError("user_id", "must not be blank")
	}
	return userIDFromTrimmed(trimmed), nil
}

func userIDFromTrimmed(trimmed string) string {
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return strings.ToLower(parsed.String())
	}
	return strings.ToLower(uuid.NewSHA1(UserIDNamespace, []byte(trimmed)).String())
}

// AnswerOut 是回答的完整响应。
type AnswerOut struct {
	ID         int64           `json:"id"`
	QuestionID int64           `json:"question_id"`
	UserID     string          `json:"user_id"`
	Text       string          `json:"text"`
	CreatedAt  model.Timestamp `json:"created_at"`
}

// AnswerShortOut 是嵌套在问题详情中的回答，不含 question_id。
type AnswerShortOut struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Text      string          `json:"text"`
	CreatedAt model.Timestamp `json:"created_at"`
}

// NewAnswerOut 把模型转换为响应。
func NewAnswerOut(a *model.Answer) AnswerOut {
	return AnswerOut{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		UserID:     a.UserID,
		Text:       a.Text,
		CreatedAt:  model.Timestamp(a.CreatedAt),
	}
}
