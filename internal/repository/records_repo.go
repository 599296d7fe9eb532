package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record id already exists")
)

// Identified 具有唯一 ID 的记录
type Identified interface {
	RecordID() string
}

// RecordsRepository 单个集合（员工 / 患者 / 预约）的后备存储
type RecordsRepository[T Identified] interface {
	// List 按插入顺序返回全部记录（副本）
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, item T) error
	// Replace 替换已有记录，位置不变
	Replace(ctx context.Context, id string, item T) error
	Remove(ctx context.Context, id string) (T, error)
}
