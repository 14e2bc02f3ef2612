package database

import (
	"context"
	"fmt"

	"qa-service-go/pkg/log"

	"gorm.io/gorm"
)

type txKey struct{}

// Conn 返回 ctx 中携带的事务；没有事务时返回绑定了 ctx 的 db。
// repository 通过它拿到连接，从而自动加入当前请求的工作单元。
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// UnitOfWork 把一次请求的全部数据库操作限定在一个事务内。
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork 创建一个新的 UnitOfWork。
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Write 在事务中执行 fn：fn 返回 nil 时提交，返回错误或 panic 时回滚。
// 中途不会提交。ctx 已经处于事务中时直接复用该事务。
func (u *UnitOfWork) Write(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Errorf("rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return TranslateError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Read 在事务中执行只读的 fn，结束后总是回滚，不产生任何提交。
func (u *UnitOfWork) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	return fn(withTx(ctx, tx))
}
