// Package proxy writes per-site reverse-proxy configuration files and
// publishes them through a validate-then-reload protocol, reverting the
// write if validation fails (§4.1.3). Writes to a single site file are
// serialized by a per-file lock (§5).
package proxy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deployhub/orchestrator/internal/adapters/executor"
)

// Writer publishes reverse-proxy site config files.
type Writer struct {
	sitesDir   string
	reloadCmd  []string
	validateCmd []string
	exec       *executor.Executor

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a Writer rooted at sitesDir, using exec for all filesystem
// writes and command execution.
func New(sitesDir string, validateCmd, reloadCmd []string, exec *executor.Executor) *Writer {
	return &Writer{
		sitesDir:    sitesDir,
		reloadCmd:   reloadCmd,
		validateCmd: validateCmd,
		exec:        exec,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (w *Writer) lockFor(site string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[site]
	if !ok {
		l = &sync.Mutex{}
		w.locks[site] = l
	}
	return l
}

// Publish writes config for site, validates the global proxy config, and
// reloads the proxy service. If validation fails, the file is reverted to
// its pre-write contents (or removed, if it did not previously exist) and
// an error is returned; the reload is never attempted in that case.
func (w *Writer) Publish(ctx context.Context, site string, config []byte) error {
	lock := w.lockFor(site)
	lock.Lock()
	defer lock.Unlock()

	path := filepath.Join(w.sitesDir, site)

	backup, hadBackup, err := w.backup(path)
	if err != nil {
		return err
	}

	if err := w.exec.WriteFile(path, config, 0644); err != nil {
		return fmt.Errorf("failed to write site config %s: %w", site, err)
	}

	if len(w.validateCmd) > 0 {
		if _, err := w.exec.Run(ctx, 10*time.Second, w.validateCmd[0], w.validateCmd[1:]...); err != nil {
			if revertErr := w.revert(path, backup, hadBackup); revertErr != nil {
				return fmt.Errorf("validation failed (%w) and revert also failed: %v", err, revertErr)
			}
			return fmt.Errorf("proxy config validation failed, reverted: %w", err)
		}
	}

	if len(w.reloadCmd) > 0 {
		if _, err := w.exec.Run(ctx, 10*time.Second, w.reloadCmd[0], w.reloadCmd[1:]...); err != nil {
			return fmt.Errorf("proxy reload failed after publish: %w", err)
		}
	}

	return nil
}

func (w *Writer) backup(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return data, true, nil
}

func (w *Writer) revert(path string, backup []byte, hadBackup bool) error {
	if !hadBackup {
		return w.exec.Remove(path)
	}
	return w.exec.WriteFile(path, backup, 0644)
}

// Remove deletes a site's config file and reloads the proxy (used by teardown).
func (w *Writer) Remove(ctx context.Context, site string) error {
	lock := w.lockFor(site)
	lock.Lock()
	defer lock.Unlock()

	path := filepath.Join(w.sitesDir, site)
	if err := w.exec.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove site config %s: %w", site, err)
	}

	if len(w.reloadCmd) > 0 {
		if _, err := w.exec.Run(ctx, 10*time.Second, w.reloadCmd[0], w.reloadCmd[1:]...); err != nil {
			return fmt.Errorf("proxy reload failed after removal: %w", err)
		}
	}
	return nil
}
