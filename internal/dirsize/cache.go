package dirsize

import (
	"io/fs"
	"path/filepath"
	"time"
)

const (
	// calculationTimeout bounds how long one directory may take.
	calculationTimeout = 5 * time.Second
	// maxFilesPerDir bounds how many files one calculation may stat.
	maxFilesPerDir = 10000

	updateBuffer = 64
	taskBuffer   = 64
)

type update struct {
	path    string
	size    int64
	partial bool
}

type entry struct {
	size    int64
	partial bool
}

// Cache computes directory sizes on a single background worker and caches
// them. The interaction goroutine requests paths and polls for finished
// results; it never blocks on the worker.
type Cache struct {
	cache   map[string]entry
	pending map[string]struct{}
	updates chan update
	tasks   chan string
	done    chan struct{}
}

// New starts the worker.
func New() *Cache {
	c := &Cache{
		cache:   make(map[string]entry),
		pending: make(map[string]struct{}),
		updates: make(chan update, updateBuffer),
		tasks:   make(chan string, taskBuffer),
		done:    make(chan struct{}),
	}
	go c.worker()
	return c
}

// Close stops the worker. Pending calculations are abandoned.
func (c *Cache) Close() {
	close(c.done)
}

// Request queues a size calculation unless the path is cached, already
// queued, or the queue is full (it will be requested again next frame).
func (c *Cache) Request(path string) {
	if _, ok := c.cache[path]; ok {
		return
	}
	if _, ok := c.pending[path]; ok {
		return
	}
	select {
	case c.tasks <- path:
		c.pending[path] = struct{}{}
	default:
	}
}

// Poll drains finished calculations into the cache; reports whether
// anything changed.
func (c *Cache) Poll() bool {
	changed := false
	for {
		select {
		case u := <-c.updates:
			c.cache[u.path] = entry{size: u.size, partial: u.partial}
			delete(c.pending, u.path)
			changed = true
		default:
			return changed
		}
	}
}

// Get returns the cached size for path. partial means the calculation hit
// its time or file budget and the size is a lower bound.
func (c *Cache) Get(path string) (size int64, partial bool, ok bool) {
	e, ok := c.cache[path]
	return e.size, e.partial, ok
}

// Invalidate drops a cached value so the next Request recomputes it.
func (c *Cache) Invalidate(path string) {
	delete(c.cache, path)
}

func (c *Cache) worker() {
	for {
		select {
		case <-c.done:
			return
		case path := <-c.tasks:
			size, partial := calculate(path)
			select {
			case c.updates <- update{path: path, size: size, partial: partial}:
			case <-c.done:
				return
			}
		}
	}
}

// calculate sums file sizes under root, stopping at the time or file budget
// so one enormous directory cannot starve the queue.
func calculate(root string) (int64, bool) {
	var total int64
	files := 0
	partial := false
	deadline := time.Now().Add(calculationTimeout)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries contribute nothing
		}
		if files >= maxFilesPerDir || time.Now().After(deadline) {
			partial = true
			return filepath.SkipAll
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
				files++
			}
		}
		return nil
	})

	return total, partial
}
