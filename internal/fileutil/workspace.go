package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockFileName = ".muxxy.lock"

// Workspace is a process-scoped temporary directory for transformed subtitle
// files. The directory is created lazily on first write. Every output name
// embeds a freshly generated random token, so concurrent writers never
// collide and need no coordination beyond this type.
type Workspace struct {
	dir string

	mu      sync.Mutex
	created bool
}

// NewWorkspace returns a workspace rooted at dir. An empty dir places the
// workspace under the system temporary directory.
func NewWorkspace(dir string) *Workspace {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join(os.TempDir(), "muxxy")
	}
	return &Workspace{dir: dir}
}

// Dir returns the workspace root. The directory may not exist yet.
func (w *Workspace) Dir() string { return w.dir }

func (w *Workspace) ensure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.created {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	w.created = true
	return nil
}

// OutputPath reserves a uniquely named output path for a transform of src.
// The name keeps the source stem and extension and inserts the transform
// label plus a random token: "Show - 05_shifted_1a2b3c4d.ass". The file
// itself is not created.
func (w *Workspace) OutputPath(src, label string) (string, error) {
	if err := w.ensure(); err != nil {
		return "", err
	}
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	token := uuid.NewString()[:8]
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s_%s%s", stem, label, token, ext)), nil
}

// Cleanup removes every file in the workspace. The removal is serialized
// through a file lock so a cleanup never races another process still writing
// transformed subtitles into the same directory.
func (w *Workspace) Cleanup() error {
	if _, err := os.Stat(w.dir); os.IsNotExist(err) {
		return nil
	}

	lock := flock.New(filepath.Join(w.dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock workspace: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read workspace: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == lockFileName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}

	w.mu.Lock()
	w.created = false
	w.mu.Unlock()
	return nil
}
