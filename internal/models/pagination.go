package models

// PaginationEvent 分页事件（first: 首行下标, rows: 每页行数, page: 从 0 开始的页码）
type PaginationEvent struct {
	First int `json:"first"`
	Rows  int `json:"rows"`
	Page  int `json:"page"`
}

// NewPaginationEvent page 缺省（<=0）时由 first/rows 推算
func NewPaginationEvent(first, rows, page int) PaginationEvent {
	if first < 0 {
		first = 0
	}
	if page <= 0 && rows > 0 {
		page = first / rows
	}
	if page < 0 {
		page = 0
	}
	return PaginationEvent{First: first, Rows: rows, Page: page}
}
