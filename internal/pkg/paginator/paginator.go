// Package paginator 实现固定大小、从 1 开始的页码分页.
package paginator

import "strconv"

const DefaultPerPage = 10

// Window 一页在结果集中的位置
type Window struct {
	Number   int
	NumPages int
	Count    int64
	PerPage  int
	Offset   int
	Limit    int
}

// Page 当前页的数据
type Page[T any] struct {
	Window
	Items []T
}

// New 根据总数和原始页码计算分页窗口.
// 缺失或非数字的页码视为 1, 小于 1 取 1, 超出末页取末页; 空结果集也有一页.
func New(count int64, rawPage string, perPage int) Window {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}

	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(rawPage)
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Window{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
		Offset:   (number - 1) * perPage,
		Limit:    perPage,
	}
}

func NewPage[T any](w Window, items []T) Page[T] {
	return Page[T]{Window: w, Items: items}
}

func (w Window) HasNext() bool {
	return w.Number < w.NumPages
}

func (w Window) HasPrevious() bool {
	return w.Number > 1
}

func (w Window) HasOtherPages() bool {
	return w.HasNext() || w.HasPrevious()
}

func (w Window) NextNumber() int {
	if !w.HasNext() {
		return w.Number
	}
	return w.Number + 1
}

func (w Window) PreviousNumber() int {
	if !w.HasPrevious() {
		return w.Number
	}
	return w.Number - 1
}
