package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	util "github.com/AnblueWang/bustub/internal/utils"
)

/**
* This module reads and writes fixed-size pages from / to disk.
* A page with id N lives at byte offset N * PageSize.
**/
type FileManager struct {
	mu         sync.Mutex
	file       *os.File
	nextPageID util.PageID
	freedIDs   []util.PageID
	syncWrites bool
}

func NewFileManager(path string, syncWrites bool) (*FileManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return &FileManager{
		file:       f,
		nextPageID: util.PageID((info.Size() + util.PageSize - 1) / util.PageSize),
		syncWrites: syncWrites,
	}, nil
}

/* READ FILE */
// ReadPage fills buf with the durable content of pageID. A page that was
// allocated but never written reads back as zeroes.
func (fm *FileManager) ReadPage(pageID util.PageID, buf []byte) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}
	if len(buf) != util.PageSize {
		return util.ErrBufferSize
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	n, err := fm.file.ReadAt(buf, int64(pageID)*util.PageSize)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("read page %d: %w", pageID, err)
		}
		// Short read past EOF: the tail that was never written is zero.
		clear(buf[n:])
	}
	return nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(pageID util.PageID, buf []byte) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}
	if len(buf) != util.PageSize {
		return util.ErrBufferSize
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	if _, err := fm.file.WriteAt(buf, int64(pageID)*util.PageSize); err != nil {
		return fmt.Errorf("write page %d: %w", pageID, err)
	}
	if fm.syncWrites {
		if err := fm.file.Sync(); err != nil {
			return fmt.Errorf("sync page %d: %w", pageID, err)
		}
	}
	return nil
}

// AllocatePage hands out a page identifier, preferring previously
// deallocated ids before extending the file's high-water mark.
func (fm *FileManager) AllocatePage() util.PageID {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if n := len(fm.freedIDs); n > 0 {
		id := fm.freedIDs[n-1]
		fm.freedIDs = fm.freedIDs[:n-1]
		return id
	}

	id := fm.nextPageID
	fm.nextPageID++
	return id
}

func (fm *FileManager) DeallocatePage(pageID util.PageID) {
	if !pageID.Valid() {
		return
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.freedIDs = append(fm.freedIDs, pageID)
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil {
		return nil // Idempotent
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	var err error
	if fm.file != nil {
		if e := fm.file.Sync(); e != nil {
			err = errors.Join(err, fmt.Errorf("sync file: %w", e))
		}
		if e := fm.file.Close(); e != nil {
			err = errors.Join(err, fmt.Errorf("close file: %w", e))
		}
		fm.file = nil
	}
	return err
}
