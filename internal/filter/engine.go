// Package filter 实现列表过滤引擎：分类过滤 + 搜索 + 分页记账 + 防抖输入。
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll 不按分类过滤
const CategoryAll = "All"

// Record 可被过滤的记录
type Record interface {
	RecordID() string
	Category() string
	SearchFields() []string
}

// Named 可按名称排序的记录
type Named interface {
	SortName() string
}

// Criteria 过滤条件快照（Page 从 0 开始）
type Criteria struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// AllCategories 空分类等同 "All"
func (c Criteria) AllCategories() bool {
	return c.Category == "" || c.Category == CategoryAll
}

// First 当前页首行下标
func (c Criteria) First() int {
	if c.Page <= 0 || c.PageSize <= 0 {
		return 0
	}
	return c.Page * c.PageSize
}

// Apply 返回过滤后的完整序列及总数，不做分页切片。纯函数，不修改 items。
func Apply[T Record](c Criteria, items []T) ([]T, int) {
	folder := cases.Fold()
	search := folder.String(strings.TrimSpace(c.Search))
	all := c.AllCategories()

	out := make([]T, 0, len(items))
	for _, it := range items {
		if !all && it.Category() != c.Category {
			continue
		}
		if search != "" && !matches(folder, it.SearchFields(), search) {
			continue
		}
		out = append(out, it)
	}
	return out, len(out)
}

func matches(folder cases.Caser, fields []string, needle string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(folder.String(f), needle) {
			return true
		}
	}
	return false
}

// Window 按 first/rows 截取一页（越界返回空切片）
func Window[T any](items []T, first, rows int) []T {
	if first < 0 {
		first = 0
	}
	if first >= len(items) || rows <= 0 {
		return []T{}
	}
	end := first + rows
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-first)
	copy(out, items[first:end])
	return out
}

// SortByName 返回按名称排序后的副本（稳定排序，按语言规则比较）
func SortByName[T Named](items []T, tag language.Tag) []T {
	out := make([]T, len(items))
	copy(out, items)
	col := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].SortName(), out[j].SortName()) < 0
	})
	return out
}
