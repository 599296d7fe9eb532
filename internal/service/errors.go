package service

import (
	"errors"
	"strings"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"
)

var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = repository.ErrNotFound
	// ErrConflict 记录 ID 已存在
	ErrConflict = repository.ErrDuplicate
	// ErrNetwork 调用记录 API 失败
	ErrNetwork = errors.New("records api request failed")
)

// FieldError 单个字段校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 表单校验失败，Message 可直接展示给用户
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Message 第一条错误信息
func (e *ValidationError) Message() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	return e.Fields[0].Message
}
