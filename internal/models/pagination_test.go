package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationEvent(t *testing.T) {
	assert.Equal(t, PaginationEvent{First: 20, Rows: 10, Page: 2}, NewPaginationEvent(20, 10, 0))
	assert.Equal(t, PaginationEvent{First: 20, Rows: 10, Page: 5}, NewPaginationEvent(20, 10, 5))
	assert.Equal(t, PaginationEvent{First: 0, Rows: 0, Page: 0}, NewPaginationEvent(-3, 0, 0))
}
