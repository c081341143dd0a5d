// Package paas is a typed wrapper around a Coolify-style PaaS HTTP API:
// projects, applications, databases, and env vars. It owns this backend's
// retry, timeout, and error-classification policy (§4.1.1); nothing above
// this layer sees raw HTTP.
package paas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
	"github.com/deployhub/orchestrator/internal/adapters/httpclient"
	"github.com/deployhub/orchestrator/internal/resource"
)

// Client is the PaaS adapter. One Client instance is shared across
// deployments; its underlying HTTP clients pool connections and are safe
// for concurrent use.
type Client struct {
	baseURL    string
	apiToken   string
	serverUUID string

	createClient *retryablehttp.Client // 60s
	readClient   *retryablehttp.Client // 30s
	deleteClient *retryablehttp.Client // 30s
	pollClient   *retryablehttp.Client // 30s
}

// New builds a PaaS adapter client targeting baseURL, authenticating with
// apiToken (bearer auth) and tagging every create call with serverUUID.
func New(baseURL, apiToken, serverUUID string) *Client {
	return &Client{
		baseURL:      baseURL,
		apiToken:     apiToken,
		serverUUID:   serverUUID,
		createClient: httpclient.New(httpclient.DefaultOptions(60 * time.Second)),
		readClient:   httpclient.New(httpclient.DefaultOptions(30 * time.Second)),
		deleteClient: httpclient.New(httpclient.DefaultOptions(30 * time.Second)),
		pollClient:   httpclient.New(httpclient.DefaultOptions(30 * time.Second)),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*retryablehttp.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(client *retryablehttp.Client, req *retryablehttp.Request, op string) (*http.Response, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "%s: backend unreachable", op)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "%s: failed to read response body", op)
	}

	return resp, raw, nil
}

// classifyStatus maps a non-2xx status to the taxonomy in §4.1.1/§7.
func classifyStatus(op string, status int, body []byte) *apperrors.AppError {
	switch {
	case status == http.StatusNotFound:
		return apperrors.Newf(apperrors.CodeNotFound, apperrors.KindNotFound, "%s: not found", op)
	case status == http.StatusConflict:
		return apperrors.Newf(apperrors.CodeProjectNameTaken, apperrors.KindNameTaken, "%s: name already taken", op).WithMeta("body", string(body))
	case status == http.StatusUnprocessableEntity:
		return apperrors.Newf(apperrors.CodeRepoUnreachable, apperrors.KindRepoUnreachable, "%s: repository unreachable", op)
	case status >= 400 && status < 500:
		return apperrors.Newf(apperrors.CodeInvalidProjectName, apperrors.KindValidation, "%s: rejected by backend (%d)", op, status).WithMeta("body", string(body))
	default:
		return apperrors.Newf(apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "%s: backend error (%d)", op, status)
	}
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

// CreateProject creates a project and returns its UUID and default
// environment UUID.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*ProjectCreateResult, error) {
	payload := map[string]interface{}{
		"name":        name,
		"description": description,
		"server_uuid": c.serverUUID,
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/projects", payload)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.createClient, req, "createProject")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("createProject", resp.StatusCode, raw)
	}

	var out struct {
		UUID            string `json:"uuid"`
		EnvironmentUUID string `json:"environment_uuid"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "createProject: malformed response")
	}

	return &ProjectCreateResult{ProjectUUID: out.UUID, EnvironmentUUID: out.EnvironmentUUID}, nil
}

// GetProjectDetails fetches a project record including its environments.
func (c *Client) GetProjectDetails(ctx context.Context, uuid string) (*ProjectDetails, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/projects/"+uuid, nil)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.readClient, req, "getProjectDetails")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("getProjectDetails", resp.StatusCode, raw)
	}

	var out ProjectDetails
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "getProjectDetails: malformed response")
	}
	return &out, nil
}

// ListProjects returns a summary of every project known to the PaaS.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/projects", nil)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.readClient, req, "listProjects")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("listProjects", resp.StatusCode, raw)
	}

	var out []ProjectSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listProjects: malformed response")
	}
	return out, nil
}

// CreateApplication creates a git-based application inside an environment.
func (c *Client) CreateApplication(ctx context.Context, projectUUID, envUUID string, spec AppSpec) (*AppCreateResult, error) {
	payload := map[string]interface{}{
		"project_uuid":     projectUUID,
		"environment_uuid": envUUID,
		"server_uuid":      c.serverUUID,
		"name":             spec.Name,
		"git_repository":   spec.GitRepository,
		"git_branch":       spec.GitBranch,
		"build_pack":       spec.BuildPack,
		"ports_exposes":    spec.Port,
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/applications", payload)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.createClient, req, "createApplication")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("createApplication", resp.StatusCode, raw)
	}

	var out struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "createApplication: malformed response")
	}

	return &AppCreateResult{AppUUID: out.UUID}, nil
}

// SetApplicationDomain attaches fqdn to an application. A 409 on an
// identical fqdn is classified as success (§8: re-attach is a no-op).
func (c *Client) SetApplicationDomain(ctx context.Context, appUUID, fqdn string) error {
	payload := map[string]interface{}{"fqdn": fqdn}

	req, err := c.newRequest(ctx, http.MethodPatch, "/api/v1/applications/"+appUUID+"/domain", payload)
	if err != nil {
		return err
	}

	resp, raw, err := c.do(c.createClient, req, "setApplicationDomain")
	if err != nil {
		return err
	}
	if isSuccess(resp.StatusCode) {
		return nil
	}
	if resp.StatusCode == http.StatusConflict {
		return apperrors.Newf(apperrors.CodeDomainConflict, apperrors.KindDomainConflict, "domain %s already bound", fqdn)
	}
	return classifyStatus("setApplicationDomain", resp.StatusCode, raw)
}

// SetEnvVars pushes the flattened env-var list to an application. Partial
// success is permitted: one failing entry does not abort the others.
func (c *Client) SetEnvVars(ctx context.Context, appUUID string, entries []resource.EnvVarEntry) []EnvPushResult {
	results := make([]EnvPushResult, 0, len(entries))
	for _, e := range entries {
		payload := map[string]interface{}{
			"key":           e.Key,
			"value":         e.Value,
			"is_build_time": e.IsBuildTime,
		}

		req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/applications/"+appUUID+"/envs", payload)
		if err != nil {
			results = append(results, EnvPushResult{Key: e.Key, Success: false})
			continue
		}

		resp, _, err := c.do(c.createClient, req, "setEnvVars")
		results = append(results, EnvPushResult{Key: e.Key, Success: err == nil && isSuccess(resp.StatusCode)})
	}
	return results
}

// StartApplication starts an application. §4.1.1: attempt GET first (some
// backend versions expose start as a GET-triggered action), fall back to
// POST; only both failing constitutes a start failure.
func (c *Client) StartApplication(ctx context.Context, appUUID string) error {
	getReq, err := c.newRequest(ctx, http.MethodGet, "/api/v1/applications/"+appUUID+"/start", nil)
	if err == nil {
		if resp, _, doErr := c.do(c.createClient, getReq, "startApplication(GET)"); doErr == nil && isSuccess(resp.StatusCode) {
			return nil
		}
	}

	postReq, err := c.newRequest(ctx, http.MethodPost, "/api/v1/applications/"+appUUID+"/start", nil)
	if err != nil {
		return err
	}

	resp, raw, err := c.do(c.createClient, postReq, "startApplication(POST)")
	if err != nil {
		return err
	}
	if isSuccess(resp.StatusCode) {
		return nil
	}
	return classifyStatus("startApplication", resp.StatusCode, raw)
}

// PollApplicationStatus fetches the application's current lifecycle state.
func (c *Client) PollApplicationStatus(ctx context.Context, appUUID string) (*AppStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/applications/"+appUUID+"/status", nil)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.pollClient, req, "pollApplicationStatus")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("pollApplicationStatus", resp.StatusCode, raw)
	}

	var out AppStatus
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "pollApplicationStatus: malformed response")
	}
	if out.State == "" {
		out.State = StateUnknown
	}
	return &out, nil
}

// CreateDatabase provisions a database of the given kind. Payloads follow
// the kind-specific fields in §4.1.1; Redis omits the password field
// entirely (backend bug workaround) and the returned credentials carry an
// empty password.
func (c *Client) CreateDatabase(ctx context.Context, projectUUID string, spec DBSpec) (*DBCreateResult, error) {
	host := spec.ProjectName + "-" + spec.Name
	sanitized := resource.SanitizeDBName(host)

	var payload map[string]interface{}
	var user, password, database string

	switch spec.Kind {
	case resource.KindPostgres:
		password, _ = resource.GeneratePassword()
		user = "dbuser"
		database = sanitized
		payload = map[string]interface{}{
			"project_uuid":      projectUUID,
			"server_uuid":       c.serverUUID,
			"name":              spec.Name,
			"postgres_user":     user,
			"postgres_password": password,
			"postgres_db":       database,
		}
	case resource.KindMySQL:
		password, _ = resource.GeneratePassword()
		rootPassword, _ := resource.GeneratePassword()
		user = "dbuser"
		database = sanitized
		payload = map[string]interface{}{
			"project_uuid":        projectUUID,
			"server_uuid":         c.serverUUID,
			"name":                spec.Name,
			"mysql_root_password": rootPassword,
			"mysql_user":          user,
			"mysql_password":      password,
			"mysql_database":      database,
		}
	case resource.KindRedis:
		payload = map[string]interface{}{
			"project_uuid": projectUUID,
			"server_uuid":  c.serverUUID,
			"name":         spec.Name,
		}
	case resource.KindMongo:
		password, _ = resource.GeneratePassword()
		user = "admin"
		database = sanitized
		payload = map[string]interface{}{
			"project_uuid":                projectUUID,
			"server_uuid":                 c.serverUUID,
			"name":                        spec.Name,
			"mongo_initdb_root_username":  user,
			"mongo_initdb_root_password":  password,
			"mongo_initdb_database":       database,
		}
	default:
		return nil, apperrors.Newf(apperrors.CodeInvalidDatabaseKind, apperrors.KindValidation, "unsupported database kind %q", spec.Kind)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/databases/"+string(spec.Kind), payload)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.createClient, req, "createDatabase")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("createDatabase", resp.StatusCode, raw)
	}

	var out struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "createDatabase: malformed response")
	}

	creds := resource.NewCredentials(spec.Kind, host, user, password, database)
	return &DBCreateResult{DBUUID: out.UUID, Credentials: creds}, nil
}

// StartDatabase starts a provisioned database. Failures are soft (§4.3).
func (c *Client) StartDatabase(ctx context.Context, dbUUID string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/databases/"+dbUUID+"/start", nil)
	if err != nil {
		return err
	}

	resp, raw, err := c.do(c.createClient, req, "startDatabase")
	if err != nil {
		return err
	}
	if isSuccess(resp.StatusCode) {
		return nil
	}
	return classifyStatus("startDatabase", resp.StatusCode, raw)
}

// ListApplications returns every application under a project, used by
// teardown to discover what to delete (§4.3 reverse pipeline).
func (c *Client) ListApplications(ctx context.Context, projectUUID string) ([]ApplicationRef, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/projects/"+projectUUID+"/applications", nil)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.readClient, req, "listApplications")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("listApplications", resp.StatusCode, raw)
	}

	var out []ApplicationRef
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listApplications: malformed response")
	}
	return out, nil
}

// ListDatabases returns every database under a project.
func (c *Client) ListDatabases(ctx context.Context, projectUUID string) ([]DatabaseRef, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/projects/"+projectUUID+"/databases", nil)
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(c.readClient, req, "listDatabases")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus("listDatabases", resp.StatusCode, raw)
	}

	var out []DatabaseRef
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listDatabases: malformed response")
	}
	return out, nil
}

// DeleteApplication deletes an application. A 404 is treated as success.
func (c *Client) DeleteApplication(ctx context.Context, appUUID string) error {
	return c.delete(ctx, "/api/v1/applications/"+appUUID, "deleteApplication")
}

// DeleteDatabase deletes a database. A 404 is treated as success.
func (c *Client) DeleteDatabase(ctx context.Context, dbUUID string) error {
	return c.delete(ctx, "/api/v1/databases/"+dbUUID, "deleteDatabase")
}

// DeleteProject deletes a project. A 404 is treated as success.
func (c *Client) DeleteProject(ctx context.Context, projectUUID string) error {
	return c.delete(ctx, "/api/v1/projects/"+projectUUID, "deleteProject")
}

func (c *Client) delete(ctx context.Context, path, op string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	resp, raw, err := c.do(c.deleteClient, req, op)
	if err != nil {
		return err
	}
	if isSuccess(resp.StatusCode) || resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return classifyStatus(op, resp.StatusCode, raw)
}
