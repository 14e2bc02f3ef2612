// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"gorm.io/gorm"
)

// Question 对应于数据库中的 'questions' 表。
// 删除问题时由外键 ON DELETE CASCADE 在数据库层级联删除其回答，
// 不依赖任何应用层代码路径。
type Question struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// Text 去除首尾空白后非空，CHECK 约束在存储层再次兜底。
	Text      string    `gorm:"size:500;not null;check:ck_questions_text_not_blank,trim(text) <> ''" json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate 由应用写入创建时间，绕过 gorm 直接插入的行使用列默认值 CURRENT_TIMESTAMP。
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = tx.NowFunc()
	}
	return nil
}
