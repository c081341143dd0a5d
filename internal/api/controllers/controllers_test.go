package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/deployhub/orchestrator/internal/adapters/dns"
	"github.com/deployhub/orchestrator/internal/adapters/executor"
	"github.com/deployhub/orchestrator/internal/adapters/paas"
	"github.com/deployhub/orchestrator/internal/adapters/proxy"
	"github.com/deployhub/orchestrator/internal/orchestrator"
	"github.com/deployhub/orchestrator/internal/pipeline"
)

// newFakePaaS is a minimal stand-in for the Coolify-style backend covering
// every endpoint the controllers under test drive an Orchestrator through:
// a full deploy, a project listing, and a teardown.
func newFakePaaS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]map[string]string{
				{"name": "demo-a", "uuid": "proj-1", "status": "running", "created_at": "2026-01-01T00:00:00Z"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"uuid": "proj-1", "environment_uuid": "env-1"})
	})
	mux.HandleFunc("/api/v1/projects/proj-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"uuid": "proj-1", "name": "demo-a"})
	})
	mux.HandleFunc("/api/v1/projects/proj-1/applications", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{{"uuid": "app-1", "name": "demo-a"}})
	})
	mux.HandleFunc("/api/v1/projects/proj-1/databases", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	})
	mux.HandleFunc("/api/v1/applications/app-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
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
		if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/zones/apps.example.com") {
			json.NewEncoder(w).Encode(map[string]interface{}{"rrsets": []interface{}{}})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

// newTestOrchestrator wires a real Orchestrator against fake PaaS/DNS
// backends and a proxy/executor pair writing into a temp directory,
// mirroring the fake-backend pattern in pipeline/run_test.go. auditRepo is
// left nil, the same "not configured" mode cmd/api/main.go falls back to
// when DB_* env vars are absent (§C.1) — ListDeployments/GetDeployment
// degrade to an empty list / not-found rather than needing a live database.
func newTestOrchestrator(t *testing.T) (*orchestrator.Orchestrator, func()) {
	t.Helper()
	paasSrv := newFakePaaS(t)
	dnsSrv := newFakeDNS(t)

	sitesDir := t.TempDir()
	exec := executor.New(sitesDir)
	proxyWriter := proxy.New(sitesDir, nil, nil, exec)

	adapters := &pipeline.Adapters{
		PaaS:     paas.New(paasSrv.URL, "test-token", "server-1"),
		DNS:      dns.New(dnsSrv.URL, "test-key"),
		Proxy:    proxyWriter,
		Executor: exec,
	}
	cfg := pipeline.Config{
		ServerIP:             "10.0.0.5",
		BaseDomain:           "apps.example.com",
		DefaultGitRepo:       "https://git.example.com/default.git",
		DNSZone:              "apps.example.com",
		WaitReadyInterval:    10 * time.Millisecond,
		WaitReadyBudget:      2 * time.Second,
		WaitReadyPollTimeout: 1 * time.Second,
	}
	p := pipeline.New(adapters, cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orch := orchestrator.New(p, adapters, nil, logger, "apps.example.com")
	cleanup := func() {
		paasSrv.Close()
		dnsSrv.Close()
	}
	return orch, cleanup
}

func TestHealthController_Health(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewHealthController(orch)
	r.GET("/api/health", ctrl.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body orchestrator.HealthStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Services["paas"])
	assert.Equal(t, "ok", body.Services["dns"])
}

func TestProjectController_ListProjects(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewProjectController(orch)
	r.GET("/api/projects", ctrl.ListProjects)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/projects", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var projects []orchestrator.ProjectListEntry
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 1)
	assert.Equal(t, "demo-a.apps.example.com", projects[0].FQDN)
}

func TestProjectController_DeleteProject(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewProjectController(orch)
	r.DELETE("/api/projects/:uuid", ctrl.DeleteProject)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/projects/proj-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeployController_Deploy_Succeeds(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewDeployController(orch)
	r.POST("/api/deploy/complete", ctrl.Deploy)

	body := `{"projectName":"demo-a","generateDomain":true}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/deploy/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp orchestrator.DeployResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "demo-a.apps.example.com", resp.Domain)
}

func TestDeployController_Deploy_RejectsInvalidBody(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewDeployController(orch)
	r.POST("/api/deploy/complete", ctrl.Deploy)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/deploy/complete", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeploymentController_ListDeployments_EmptyWithoutAuditRepo(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewDeploymentController(orch)
	r.GET("/api/deployments", ctrl.ListDeployments)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/deployments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestDeploymentController_GetDeployment_NotFoundWithoutAuditRepo(t *testing.T) {
	orch, cleanup := newTestOrchestrator(t)
	defer cleanup()

	r := gin.Default()
	ctrl := NewDeploymentController(orch)
	r.GET("/api/deployments/:id", ctrl.GetDeployment)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/deployments/"+"11111111-1111-1111-1111-111111111111", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
