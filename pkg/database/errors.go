package database

import (
	"errors"
	"strings"

	"qa-service-go/internal/errorz"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// TranslateError 把各驱动的约束错误统一转换为 *errorz.ConstraintViolation，
// 其他错误原样返回。
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if kind, name, ok := constraintOf(err); ok {
		return &errorz.ConstraintViolation{Kind: kind, Constraint: name, Err: err}
	}
	return err
}

func constraintOf(err error) (errorz.ConstraintKind, string, bool) {
	// pgx
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return errorz.ForeignKey, pgErr.ConstraintName, true
		case "23514":
			return errorz.Check, pgErr.ConstraintName, true
		case "23505":
			return errorz.Unique, pgErr.ConstraintName, true
		}
		return "", "", false
	}

	// go-sql-driver/mysql
	var myErr *mysqlDriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1451, 1452:
			return errorz.ForeignKey, "", true
		case 3819:
			return errorz.Check, quotedName(myErr.Message), true
		case 1062:
			return errorz.Unique, "", true
		}
		return "", "", false
	}

	// mattn/go-sqlite3
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return errorz.ForeignKey, "", true
		case sqlite3.ErrConstraintCheck:
			return errorz.Check, afterColon(liteErr.Error()), true
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return errorz.Unique, "", true
		}
		return "", "", false
	}

	// gorm 的 TranslateError 模式
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errorz.ForeignKey, "", true
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errorz.Check, "", true
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorz.Unique, "", true
	}
	return "", "", false
}

// quotedName 取出 MySQL 消息中的约束名，例如 Check constraint 'ck_x' is violated.
func quotedName(msg string) string {
	_, rest, ok := strings.Cut(msg, "'")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "'")
	return name
}

// afterColon 取出 SQLite 消息中的约束名，例如 CHECK constraint failed: ck_x
func afterColon(msg string) string {
	_, rest, ok := strings.Cut(msg, ": ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}
