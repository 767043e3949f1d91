package file

import (
	util "github.com/AnblueWang/bustub/internal/utils"
)

// Manager is the durable page store the buffer pool sits on top of. Reads
// and writes move exactly one page of bytes; identifiers come from
// AllocatePage and may be reused after DeallocatePage.
type Manager interface {
	ReadPage(pageID util.PageID, buf []byte) error
	WritePage(pageID util.PageID, buf []byte) error
	AllocatePage() util.PageID
	DeallocatePage(pageID util.PageID)
}
