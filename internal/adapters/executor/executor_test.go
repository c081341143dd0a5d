package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)

	err := e.WriteFile(filepath.Join(dir, "..", "escaped.txt"), []byte("x"), 0644)
	if err == nil {
		t.Fatal("expected traversal write to be rejected")
	}
}

func TestWriteFile_RejectsOutsideAllowlist(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	e := New(dir)

	err := e.WriteFile(filepath.Join(other, "site.conf"), []byte("x"), 0644)
	if err == nil {
		t.Fatal("expected write outside allowlist to be rejected")
	}
}

func TestWriteFile_AllowsWithinPrefix(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)

	path := filepath.Join(dir, "site.conf")
	if err := e.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want %q", data, "hello")
	}
}

func TestHealthCheck_SucceedsOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := New(t.TempDir())
	if err := e.HealthCheck(context.Background(), srv.URL+"/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealthCheck_FailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := New(t.TempDir())
	if err := e.HealthCheck(context.Background(), srv.URL+"/"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
