package main

import (
	"fmt"
	"log"

	"github.com/AnblueWang/bustub/internal/storage/buffer"
	"github.com/AnblueWang/bustub/internal/storage/file"
	util "github.com/AnblueWang/bustub/internal/utils"
)

func main() {
	opts := util.DefaultOptions()

	fm, err := file.NewFileManager(opts.Path, opts.SyncWrites)
	if err != nil {
		log.Fatalf("open %s: %v", opts.Path, err)
	}
	defer fm.Close()

	bp := buffer.NewBufferPool(opts.PoolSize, fm)

	// Create a page and mutate it
	p, err := bp.NewPage()
	if err != nil {
		log.Fatalf("new page: %v", err)
	}
	pageID := p.ID()
	copy(p.Data(), []byte("test data"))

	if err := bp.UnpinPage(pageID, true); err != nil {
		log.Fatalf("unpin page %d: %v", pageID, err)
	}
	if err := bp.FlushPage(pageID); err != nil {
		log.Fatalf("flush page %d: %v", pageID, err)
	}

	// Fetch it back through a guard
	g, err := bp.FetchGuarded(pageID)
	if err != nil {
		log.Fatalf("fetch page %d: %v", pageID, err)
	}
	defer g.Release()

	fmt.Printf("page %d: %q (pins=%d, dirty=%v)\n",
		g.PageID(), string(g.Page().Data()[:9]), g.Page().PinCount(), g.Page().IsDirty())
}
