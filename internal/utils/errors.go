package util

import "errors"

var (
	ErrInvalidPageID   = errors.New("invalid page id")
	ErrInvalidPoolSize = errors.New("invalid pool size")
	ErrPageNotFound    = errors.New("page not found in buffer pool")
	ErrPageNotPinned   = errors.New("page is not pinned")
	ErrPagePinned      = errors.New("page is still pinned")
	ErrNoFreeFrame     = errors.New("no free frames")
	ErrBufferSize      = errors.New("buffer is not exactly one page")
)
