package util

// PageID represents a unique page identifier
type PageID int64

// InvalidPageID marks a frame that currently holds no page.
const InvalidPageID PageID = -1

// PageSize represents the standard page size (4KB)
const PageSize = 4096

// Valid reports whether id can refer to an allocated page.
func (id PageID) Valid() bool {
	return id >= 0
}

// Options represents database configuration options
type Options struct {
	Path       string
	PoolSize   int
	SyncWrites bool
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		Path:       "bustub.db",
		PoolSize:   64, // 256KB resident set
		SyncWrites: false,
	}
}
