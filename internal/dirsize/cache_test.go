package dirsize

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeBytes(t *testing.T, path string, n int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, n), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, c *Cache, path string) (int64, bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Poll()
		if size, partial, ok := c.Get(path); ok {
			return size, partial
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no size for %s", path)
	return 0, false
}

func TestCacheComputesRecursiveSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeBytes(t, filepath.Join(dir, "a.bin"), 100)
	writeBytes(t, filepath.Join(dir, "sub", "b.bin"), 250)

	c := New()
	defer c.Close()

	c.Request(dir)
	size, partial := waitFor(t, c, dir)
	if size != 350 {
		t.Fatalf("size = %d, want 350", size)
	}
	if partial {
		t.Fatal("unexpected partial result")
	}
}

func TestCacheDeduplicatesPendingRequests(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a.bin"), 10)

	c := New()
	defer c.Close()

	c.Request(dir)
	c.Request(dir)
	c.Request(dir)
	waitFor(t, c, dir)

	// A cached path is not re-queued.
	c.Request(dir)
	if _, pending := c.pending[dir]; pending {
		t.Fatal("cached path went back to pending")
	}
}

func TestCacheInvalidateRecomputes(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a.bin"), 10)

	c := New()
	defer c.Close()

	c.Request(dir)
	waitFor(t, c, dir)

	writeBytes(t, filepath.Join(dir, "b.bin"), 30)
	c.Invalidate(dir)
	c.Request(dir)
	size, _ := waitFor(t, c, dir)
	if size != 40 {
		t.Fatalf("size after invalidate = %d, want 40", size)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		size    int64
		partial bool
		want    string
	}{
		{0, false, "0 B"},
		{512, false, "512 B"},
		{2048, false, "2.0 KB"},
		{1536 * 1024, false, "1.5 MB"},
		{2048, true, "2.0 KB+"},
	}
	for _, c := range cases {
		if got := Format(c.size, c.partial); got != c.want {
			t.Errorf("Format(%d, %v) = %q, want %q", c.size, c.partial, got, c.want)
		}
	}
}
