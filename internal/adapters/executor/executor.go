// Package executor runs local host operations that the reference
// implementation drove through shell strings: writing proxy/container
// config files, reloading services, and checking local application health.
// Every write is checked against a fixed path allowlist before any
// filesystem syscall (§4.1.4, invariant §8.7).
package executor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
)

// Executor runs path-checked local filesystem writes and shell commands,
// plus native HTTP health checks.
type Executor struct {
	allowedPrefixes []string
	httpClient      *http.Client
}

// New builds an Executor whose writes are confined to allowedPrefixes
// (absolute directory paths).
func New(allowedPrefixes ...string) *Executor {
	cleaned := make([]string, len(allowedPrefixes))
	for i, p := range allowedPrefixes {
		cleaned[i] = filepath.Clean(p)
	}
	return &Executor{
		allowedPrefixes: cleaned,
		httpClient:      &http.Client{Timeout: 5 * time.Second},
	}
}

// checkPath rejects any path outside the allowlist, including traversal
// via "..", before touching the filesystem.
func (e *Executor) checkPath(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", apperrors.Newf(apperrors.CodePathNotAllowed, apperrors.KindValidation, "path %q contains traversal segment", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.CodePathNotAllowed, apperrors.KindValidation, "failed to resolve path %q", path)
	}
	abs = filepath.Clean(abs)

	for _, prefix := range e.allowedPrefixes {
		if abs == prefix || strings.HasPrefix(abs, prefix+string(filepath.Separator)) {
			return abs, nil
		}
	}
	return "", apperrors.Newf(apperrors.CodePathNotAllowed, apperrors.KindValidation, "path %q is outside the allowed prefixes", path)
}

// WriteFile writes data to path after validating it against the allowlist.
func (e *Executor) WriteFile(path string, data []byte, perm os.FileMode) error {
	abs, err := e.checkPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", abs, err)
	}
	return os.WriteFile(abs, data, perm)
}

// ReadFile reads path after validating it against the allowlist.
func (e *Executor) ReadFile(path string) ([]byte, error) {
	abs, err := e.checkPath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// Remove deletes path after validating it against the allowlist.
func (e *Executor) Remove(path string) error {
	abs, err := e.checkPath(path)
	if err != nil {
		return err
	}
	return os.Remove(abs)
}

// Run executes a local command (e.g. the proxy validate/reload command)
// with a bounded timeout. It does not go through a shell; args are passed
// directly to exec.
func (e *Executor) Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("command %q failed: %w", name, err)
	}
	return out, nil
}

// HealthCheck performs a native HTTP GET against a local endpoint with a
// 5s timeout, replacing shell-invoked curl.
func (e *Executor) HealthCheck(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build health check request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
