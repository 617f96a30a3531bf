package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestListChildrenOrdersDirectoriesFirst(t *testing.T) {
	tmp := t.TempDir()

	for _, name := range []string{"zeta", "Alpha"} {
		if err := os.Mkdir(filepath.Join(tmp, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"beta.txt", "README.md"} {
		if err := os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	probe := &Probe{}
	entries, err := probe.ListChildren(tmp)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}

	want := []string{"Alpha", "zeta", "beta.txt", "README.md"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
	}
	if !entries[0].IsDir || !entries[1].IsDir {
		t.Error("directories must sort before files")
	}
	if entries[2].IsDir || entries[3].IsDir {
		t.Error("files reported as directories")
	}
}

func TestListChildrenMissingDirectoryReturnsProbeError(t *testing.T) {
	probe := &Probe{}
	missing := filepath.Join(t.TempDir(), "no-such-dir")

	_, err := probe.ListChildren(missing)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}

	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProbeError, got %T", err)
	}
	if pe.Path != missing {
		t.Errorf("ProbeError.Path = %q, want %q", pe.Path, missing)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("cause should unwrap to os.ErrNotExist")
	}
}

func TestListChildrenPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod-based denial not applicable on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}

	tmp := t.TempDir()
	locked := filepath.Join(tmp, "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0o755)

	probe := &Probe{}
	_, err := probe.ListChildren(locked)
	if err == nil {
		t.Fatal("expected permission error")
	}
	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProbeError, got %T", err)
	}
	if pe.Error() == "" {
		t.Error("ProbeError must carry a human-readable reason")
	}
}

func TestListChildrenSymlinkHandling(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	tmp := t.TempDir()
	target := filepath.Join(tmp, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(tmp, "link")); err != nil {
		t.Fatal(err)
	}

	noFollow := &Probe{FollowSymlinks: false}
	entries, err := noFollow.ListChildren(tmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name == "link" {
			if !e.IsSymlink {
				t.Error("link not reported as symlink")
			}
			if e.IsDir {
				t.Error("symlink treated as directory without FollowSymlinks")
			}
		}
	}

	follow := &Probe{FollowSymlinks: true}
	entries, err = follow.ListChildren(tmp)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if e.Name == "link" {
			found = true
			if !e.IsDir {
				t.Error("symlink to directory should report IsDir with FollowSymlinks")
			}
		}
	}
	if !found {
		t.Fatal("symlink entry missing from listing")
	}
}
