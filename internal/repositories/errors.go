package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，重用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrDuplicateKey 表示违反了唯一约束
var ErrDuplicateKey = errors.New("duplicate key")

// 具体字段的唯一约束冲突，均可用 errors.Is(err, ErrDuplicateKey) 判断
var (
	ErrTrainNumberConflict = fmt.Errorf("train number already exists: %w", ErrDuplicateKey)
	ErrUsernameConflict    = fmt.Errorf("username already exists: %w", ErrDuplicateKey)
	ErrEmailConflict       = fmt.Errorf("email already exists: %w", ErrDuplicateKey)
	ErrPhoneConflict       = fmt.Errorf("phone already exists: %w", ErrDuplicateKey)
)

// ErrUnknownSortField 表示排序字段不在白名单内
var ErrUnknownSortField = errors.New("unknown sort field")

// isUniqueViolation 判断数据库错误是否为唯一约束冲突
// SQLite: "UNIQUE constraint failed: trains.number"
// PostgreSQL: "duplicate key value violates unique constraint \"idx_trains_number\""
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// violatedColumn 在冲突错误信息中查找给定列名，返回第一个命中的列
func violatedColumn(err error, columns ...string) (string, bool) {
	msg := strings.ToLower(err.Error())
	for _, col := range columns {
		if strings.Contains(msg, "."+col) || strings.Contains(msg, "_"+col) {
			return col, true
		}
	}
	return "", false
}
