package proxy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deployhub/orchestrator/internal/adapters/executor"
)

func TestPublish_WritesFileWhenNoValidateCommand(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(dir)
	w := New(dir, nil, nil, exec)

	if err := w.Publish(context.Background(), "demo-a.conf", []byte("demo-a {\n}\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "demo-a.conf"))
	if err != nil {
		t.Fatalf("expected site file to exist: %v", err)
	}
	if string(data) != "demo-a {\n}\n" {
		t.Errorf("got %q", data)
	}
}

func TestPublish_RevertsOnValidationFailure(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(dir)
	site := "demo-b.conf"
	path := filepath.Join(dir, site)

	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	w := New(dir, []string{"false"}, nil, exec)
	err := w.Publish(context.Background(), site, []byte("broken"))
	if err == nil {
		t.Fatal("expected validation failure to be returned")
	}

	data, rerr := os.ReadFile(path)
	if rerr != nil {
		t.Fatalf("expected reverted file to still exist: %v", rerr)
	}
	if string(data) != "original" {
		t.Errorf("expected revert to restore original contents, got %q", data)
	}
}

func TestPublish_RemovesNewFileOnValidationFailureWhenNoPriorBackup(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(dir)
	site := "demo-c.conf"

	w := New(dir, []string{"false"}, nil, exec)
	err := w.Publish(context.Background(), site, []byte("broken"))
	if err == nil {
		t.Fatal("expected validation failure to be returned")
	}

	if _, statErr := os.Stat(filepath.Join(dir, site)); !os.IsNotExist(statErr) {
		t.Errorf("expected no site file left behind, stat err: %v", statErr)
	}
}

func TestRemove_DeletesSiteFile(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(dir)
	site := "demo-d.conf"
	path := filepath.Join(dir, site)

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	w := New(dir, nil, nil, exec)
	if err := w.Remove(context.Background(), site); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected site file to be removed")
	}
}
