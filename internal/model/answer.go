package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer 对应于数据库中的 'answers' 表。
// (question_id, created_at) 组合索引用于按问题有序读取回答。
type Answer struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID int64 `gorm:"not null;index:ix_answers_question_created,priority:1" json:"question_id"`
	// UserID 总是小写的规范 UUID 字符串。
	UserID    string    `gorm:"type:varchar(36);not null" json:"user_id"`
	Text      string    `gorm:"size:1000;not null;check:ck_answers_text_not_blank,trim(text) <> ''" json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:ix_answers_question_created,priority:2" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Answer) TableName() string {
	return "answers"
}

// BeforeCreate 由应用写入创建时间，绕过 gorm 直接插入的行使用列默认值 CURRENT_TIMESTAMP。
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = tx.NowFunc()
	}
	return nil
}
