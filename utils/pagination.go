package utils

import (
	"math"
	"strconv"
)

// Pagination is a 1-based page request already clamped to sane bounds.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parses raw page and page-size values. Missing or invalid
// values fall back to page 1 and defaultLimit; the limit never exceeds
// maxLimit. Page and limit are both capped at math.MaxInt32 so the offset
// cannot overflow.
func NewPagination(page, limit string, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Page: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page > math.MaxInt32 {
		p.Page = math.MaxInt32
	}
	if p.Limit > math.MaxInt32 {
		p.Limit = math.MaxInt32
	}
	return p
}

func (p Pagination) Offset() int {
	return int(p.offset())
}

func (p Pagination) offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Meta describes the page that was served. Next and Previous are page
// numbers, nil at either end.
type Meta struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
}

func (p Pagination) Meta(total int64) Meta {
	m := Meta{Count: total, Page: p.Page, PageSize: p.Limit}
	if p.offset()+int64(p.Limit) < total {
		next := p.Page + 1
		m.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		m.Previous = &prev
	}
	return m
}
