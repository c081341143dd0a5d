package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/deployhub/orchestrator/internal/adapters/dns"
	"github.com/deployhub/orchestrator/internal/adapters/executor"
	"github.com/deployhub/orchestrator/internal/adapters/paas"
	"github.com/deployhub/orchestrator/internal/adapters/proxy"
)

// newFakePaaS is a minimal stand-in for the Coolify-style backend, just
// enough of the wire contract to drive one deployment through every step.
func newFakePaaS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uuid": "proj-1", "environment_uuid": "env-1"})
	})
	mux.HandleFunc("/api/v1/applications", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uuid": "app-1"})
	})
	mux.HandleFunc("/api/v1/applications/app-1/domain", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/applications/app-1/envs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/applications/app-1/start", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/applications/app-1/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"state": "running", "status": "running"})
	})

	return httptest.NewServer(mux)
}

func newFakeDNS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/servers/localhost/zones/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

// TestRun_SucceedsEndToEnd drives a full deployment (no databases, an
// auto-generated domain) through every step against fake PaaS/DNS backends
// and a real proxy/executor pair writing into a temp directory, verifying
// the reverse-proxy site file named in §4.1.3 actually lands on disk and
// the pipeline reaches SUCCEEDED.
func TestRun_SucceedsEndToEnd(t *testing.T) {
	paasSrv := newFakePaaS(t)
	defer paasSrv.Close()
	dnsSrv := newFakeDNS(t)
	defer dnsSrv.Close()

	sitesDir := t.TempDir()
	exec := executor.New(sitesDir)
	proxyWriter := proxy.New(sitesDir, nil, nil, exec)

	adapters := &Adapters{
		PaaS:     paas.New(paasSrv.URL, "test-token", "server-1"),
		DNS:      dns.New(dnsSrv.URL, "test-key"),
		Proxy:    proxyWriter,
		Executor: exec,
	}
	cfg := Config{
		ServerIP:             "10.0.0.5",
		BaseDomain:           "apps.example.com",
		DefaultGitRepo:       "https://git.example.com/default.git",
		DNSZone:              "apps.example.com",
		WaitReadyInterval:    10 * time.Millisecond,
		WaitReadyBudget:      2 * time.Second,
		WaitReadyPollTimeout: 1 * time.Second,
	}
	p := New(adapters, cfg)

	spec := DeploymentSpec{
		ProjectName:    "demo-a",
		GitRepository:  "",
		GenerateDomain: true,
	}

	dctx := p.Run(context.Background(), uuid.New(), spec)

	if dctx.State != StateSucceeded {
		t.Fatalf("expected SUCCEEDED, got %s; log=%+v", dctx.State, dctx.StepLog)
	}

	site := dctx.FullDomain + ".conf"
	if _, err := os.ReadFile(filepath.Join(sitesDir, site)); err != nil {
		t.Errorf("expected reverse-proxy site file %s to be written: %v", site, err)
	}
}
