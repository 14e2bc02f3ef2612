package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"qa-service-go/internal/errorz"
	"qa-service-go/internal/model"
	"qa-service-go/internal/testutil"
	"qa-service-go/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countQuestions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Question{}).Count(&n).Error)
	return n
}

func insertQuestion(ctx context.Context, db *gorm.DB, text string) error {
	return database.TranslateError(database.Conn(ctx, db).Create(&model.Question{Text: text}).Error)
}

func TestUnitOfWork_WriteCommits(t *testing.T) {
	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)

	err := uow.Write(context.Background(), func(ctx context.Context) error {
		return insertQuestion(ctx, db, "committed")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countQuestions(t, db))
}

func TestUnitOfWork_WriteRollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.Write(context.Background(), func(ctx context.Context) error {
		if err := insertQuestion(ctx, db, "first"); err != nil {
			return err
		}
		if err := insertQuestion(ctx, db, "second"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countQuestions(t, db))
}

func TestUnitOfWork_WriteRollsBackOnPanic(t *testing.T) {
	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)

	assert.Panics(t, func() {
		_ = uow.Write(context.Background(), func(ctx context.Context) error {
			if err := insertQuestion(ctx, db, "lost"); err != nil {
				return err
			}
			panic("handler bug")
		})
	})
	assert.EqualValues(t, 0, countQuestions(t, db))
}

func TestUnitOfWork_ReadNeverCommits(t *testing.T) {
	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)

	err := uow.Read(context.Background(), func(ctx context.Context) error {
		return insertQuestion(ctx, db, "stray write")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, countQuestions(t, db))
}

func TestUnitOfWork_NestedWriteJoinsOuterTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)
	boom := errors.New("outer failed")

	err := uow.Write(context.Background(), func(ctx context.Context) error {
		if err := uow.Write(ctx, func(ctx context.Context) error {
			return insertQuestion(ctx, db, "inner")
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countQuestions(t, db))
}

func TestSchema_CascadesQuestionDeleteToAnswers(t *testing.T) {
	db := testutil.NewDB(t)

	q := model.Question{Text: "Q"}
	require.NoError(t, db.Create(&q).Error)
	for _, text := range []string{"A1", "A2"} {
		require.NoError(t, db.Create(&model.Answer{QuestionID: q.ID, UserID: "0f455663-5061-50dd-ba09-bd3828959701", Text: text}).Error)
	}

	// 直接执行 SQL，绕过任何应用层删除逻辑
	require.NoError(t, db.Exec("DELETE FROM questions WHERE id = ?", q.ID).Error)

	var remaining int64
	require.NoError(t, db.Model(&model.Answer{}).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestSchema_RejectsBlankText(t *testing.T) {
	db := testutil.NewDB(t)

	err := insertQuestion(context.Background(), db, "   ")
	var cv *errorz.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, errorz.Check, cv.Kind)
	assert.Equal(t, "ck_questions_text_not_blank", cv.Constraint)
	assert.EqualValues(t, 0, countQuestions(t, db))
}

func TestSchema_RejectsAnswerForMissingQuestion(t *testing.T) {
	db := testutil.NewDB(t)

	err := database.TranslateError(db.Create(&model.Answer{
		QuestionID: 404,
		UserID:     "0f455663-5061-50dd-ba09-bd3828959701",
		Text:       "orphan",
	}).Error)
	var cv *errorz.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, errorz.ForeignKey, cv.Kind)
}

func TestSchema_DefaultsCreatedAtForRawInsert(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, db.Exec("INSERT INTO questions (text) VALUES (?)", "raw").Error)

	var q model.Question
	require.NoError(t, db.Where("text = ?", "raw").First(&q).Error)
	assert.False(t, q.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), q.CreatedAt, time.Minute)

	require.NoError(t, db.Exec("INSERT INTO answers (question_id, user_id, text) VALUES (?, ?, ?)",
		q.ID, "0f455663-5061-50dd-ba09-bd3828959701", "raw answer").Error)
	var a model.Answer
	require.NoError(t, db.Where("question_id = ?", q.ID).First(&a).Error)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestCreate_KeepsExplicitCreatedAt(t *testing.T) {
	db := testutil.NewDB(t)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := model.Question{Text: "dated", CreatedAt: at}
	require.NoError(t, db.Create(&q).Error)

	var got model.Question
	require.NoError(t, db.First(&got, q.ID).Error)
	assert.True(t, at.Equal(got.CreatedAt))

	fresh := model.Question{Text: "now"}
	require.NoError(t, db.Create(&fresh).Error)
	assert.False(t, fresh.CreatedAt.IsZero())
}
