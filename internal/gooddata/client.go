// Package gooddata is a thin REST client for the GoodData Cloud API.
//
// It covers exactly the read-only capabilities the operation catalog
// needs: entity listings, the declarative analytics and logical models,
// insight execution, identity listings, AI chat, and the export actions.
// HTTP failures are translated into the gderr taxonomy here so callers
// never inspect status codes.
package gooddata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

const apiPrefix = "/api/v1"

// exportPollAttempts bounds the wait for the backend's asynchronous
// export engine. The interval is a var so tests can shrink it.
const exportPollAttempts = 120

var exportPollInterval = time.Second

// Client is an authenticated handle to one GoodData Cloud organization.
// It is safe for concurrent use and never mutated after creation.
type Client struct {
	host  string
	token string
	http  *http.Client
}

// NewClient creates a client for the given host using bearer-token auth.
func NewClient(host, token string) *Client {
	return &Client{
		host:  strings.TrimRight(host, "/"),
		token: token,
		http:  &http.Client{},
	}
}

// apiError carries a non-2xx response for the caller to classify.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, strings.TrimSpace(e.Body))
}

func (e *apiError) isNotFound() bool { return e.Status == http.StatusNotFound }

// do performs one request. 401/403 map to AuthenticationError here;
// other non-2xx statuses surface as *apiError for per-call mapping.
// The caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+apiPrefix+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, &gderr.AuthenticationError{Status: resp.StatusCode}
	case resp.StatusCode >= 300:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &apiError{Status: resp.StatusCode, Body: string(data)}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// asNotFound rewrites a 404 apiError into a typed NotFoundError.
func asNotFound(err error, kind, id string) error {
	if ae, ok := err.(*apiError); ok && ae.isNotFound() {
		return &gderr.NotFoundError{Kind: kind, ID: id, Err: ae}
	}
	return err
}

// ─── Entity listings ────────────────────────────────────────────────────────

type jsonAPIEntity struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

type jsonAPIList struct {
	Data []jsonAPIEntity `json:"data"`
}

// ListWorkspaces returns all workspaces visible to the token, in
// backend order.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var list jsonAPIList
	if err := c.getJSON(ctx, "/entities/workspaces?size=500", &list); err != nil {
		return nil, err
	}
	workspaces := make([]Workspace, 0, len(list.Data))
	for _, e := range list.Data {
		var attrs struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(e.Attributes, &attrs)
		workspaces = append(workspaces, Workspace{ID: e.ID, Name: attrs.Name})
	}
	return workspaces, nil
}

// ListMetrics returns the metrics of a workspace in backend order.
func (c *Client) ListMetrics(ctx context.Context, workspace string) ([]Metric, error) {
	var list jsonAPIList
	path := fmt.Sprintf("/entities/workspaces/%s/metrics?size=500", workspace)
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, asNotFound(err, "workspace", workspace)
	}
	metrics := make([]Metric, 0, len(list.Data))
	for _, e := range list.Data {
		var attrs struct {
			Title   string `json:"title"`
			Content struct {
				Format string `json:"format"`
			} `json:"content"`
		}
		_ = json.Unmarshal(e.Attributes, &attrs)
		metrics = append(metrics, Metric{ID: e.ID, Title: attrs.Title, Format: attrs.Content.Format})
	}
	return metrics, nil
}

// ListDatasets returns the datasets of a workspace in backend order.
func (c *Client) ListDatasets(ctx context.Context, workspace string) ([]Dataset, error) {
	var list jsonAPIList
	path := fmt.Sprintf("/entities/workspaces/%s/datasets?size=500", workspace)
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, asNotFound(err, "workspace", workspace)
	}
	datasets := make([]Dataset, 0, len(list.Data))
	for _, e := range list.Data {
		var attrs struct {
			Title string `json:"title"`
			Name  string `json:"name"`
		}
		_ = json.Unmarshal(e.Attributes, &attrs)
		title := attrs.Title
		if title == "" {
			title = attrs.Name
		}
		datasets = append(datasets, Dataset{ID: e.ID, Title: title})
	}
	return datasets, nil
}

// ─── Declarative layouts ────────────────────────────────────────────────────

// GetAnalyticsModel fetches the declarative analytics model of a
// workspace: dashboards, visualizations, and filter contexts.
func (c *Client) GetAnalyticsModel(ctx context.Context, workspace string) (*AnalyticsModel, error) {
	var payload struct {
		Analytics struct {
			AnalyticalDashboards []AnalyticsObject `json:"analyticalDashboards"`
			VisualizationObjects []AnalyticsObject `json:"visualizationObjects"`
			FilterContexts       []AnalyticsObject `json:"filterContexts"`
		} `json:"analytics"`
	}
	path := fmt.Sprintf("/layout/workspaces/%s/analyticsModel", workspace)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, asNotFound(err, "workspace", workspace)
	}
	return &AnalyticsModel{
		Dashboards:     payload.Analytics.AnalyticalDashboards,
		Visualizations: payload.Analytics.VisualizationObjects,
		FilterContexts: payload.Analytics.FilterContexts,
	}, nil
}

// GetLogicalDataModel fetches the schema graph of a workspace. The
// full response document is preserved verbatim alongside the parsed
// dataset summaries.
func (c *Client) GetLogicalDataModel(ctx context.Context, workspace string) (*DeclarativeLDM, error) {
	path := fmt.Sprintf("/layout/workspaces/%s/logicalModel", workspace)
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, asNotFound(err, "workspace", workspace)
	}
	defer resp.Body.Close()

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading logical model: %w", err)
	}

	var payload struct {
		LDM struct {
			Datasets      []LDMDataset      `json:"datasets"`
			DateInstances []json.RawMessage `json:"dateInstances"`
		} `json:"ldm"`
	}
	if err := json.Unmarshal(document, &payload); err != nil {
		return nil, fmt.Errorf("decoding logical model: %w", err)
	}
	return &DeclarativeLDM{
		Datasets:      payload.LDM.Datasets,
		DateInstances: payload.LDM.DateInstances,
		Document:      document,
	}, nil
}

// ─── Visualizations ─────────────────────────────────────────────────────────

// GetVisualization fetches one insight entity with its creator and
// modifier side-loaded.
func (c *Client) GetVisualization(ctx context.Context, workspace, id string) (*Visualization, error) {
	var payload struct {
		Data struct {
			ID         string `json:"id"`
			Attributes struct {
				Title       string         `json:"title"`
				Description string         `json:"description"`
				Tags        []string       `json:"tags"`
				CreatedAt   string         `json:"createdAt"`
				ModifiedAt  string         `json:"modifiedAt"`
				Content     map[string]any `json:"content"`
			} `json:"attributes"`
			Relationships struct {
				CreatedBy  struct{ Data *struct{ ID string } } `json:"createdBy"`
				ModifiedBy struct{ Data *struct{ ID string } } `json:"modifiedBy"`
			} `json:"relationships"`
		} `json:"data"`
		Included []struct {
			ID         string `json:"id"`
			Type       string `json:"type"`
			Attributes struct {
				FirstName string `json:"firstname"`
				LastName  string `json:"lastname"`
				Email     string `json:"email"`
			} `json:"attributes"`
		} `json:"included"`
	}

	path := fmt.Sprintf("/entities/workspaces/%s/visualizationObjects/%s?include=createdBy,modifiedBy", workspace, id)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, asNotFound(err, "insight", id)
	}

	users := make(map[string]*UserRef, len(payload.Included))
	for _, inc := range payload.Included {
		if inc.Type != "userIdentifier" {
			continue
		}
		users[inc.ID] = &UserRef{
			ID:        inc.ID,
			FirstName: inc.Attributes.FirstName,
			LastName:  inc.Attributes.LastName,
			Email:     inc.Attributes.Email,
		}
	}

	viz := &Visualization{
		ID:          payload.Data.ID,
		Title:       payload.Data.Attributes.Title,
		Description: payload.Data.Attributes.Description,
		Tags:        payload.Data.Attributes.Tags,
		CreatedAt:   payload.Data.Attributes.CreatedAt,
		ModifiedAt:  payload.Data.Attributes.ModifiedAt,
		Content:     payload.Data.Attributes.Content,
	}
	if ref := payload.Data.Relationships.CreatedBy.Data; ref != nil {
		viz.CreatedBy = users[ref.ID]
	}
	if ref := payload.Data.Relationships.ModifiedBy.Data; ref != nil {
		viz.ModifiedBy = users[ref.ID]
	}
	return viz, nil
}

// ExecuteVisualization runs the stored query of an insight and returns
// its tabular result. A backend rejection of the query surfaces as
// QueryExecutionError.
func (c *Client) ExecuteVisualization(ctx context.Context, workspace, id string) (*TableData, error) {
	viz, err := c.GetVisualization(ctx, workspace, id)
	if err != nil {
		return nil, err
	}

	var exec struct {
		ExecutionResponse struct {
			Links struct {
				ExecutionResult string `json:"executionResult"`
			} `json:"links"`
		} `json:"executionResponse"`
	}
	execPath := fmt.Sprintf("/actions/workspaces/%s/execution/afm/execute", workspace)
	if err := c.postJSON(ctx, execPath, map[string]any{"execution": viz.Content}, &exec); err != nil {
		if ae, ok := err.(*apiError); ok && ae.Status < 500 {
			return nil, &gderr.QueryExecutionError{InsightID: id, Detail: strings.TrimSpace(ae.Body), Err: ae}
		}
		return nil, err
	}

	var table TableData
	resultPath := fmt.Sprintf("/actions/workspaces/%s/execution/afm/execute/result/%s",
		workspace, exec.ExecutionResponse.Links.ExecutionResult)
	if err := c.getJSON(ctx, resultPath, &table); err != nil {
		if ae, ok := err.(*apiError); ok && ae.Status < 500 {
			return nil, &gderr.QueryExecutionError{InsightID: id, Detail: strings.TrimSpace(ae.Body), Err: ae}
		}
		return nil, err
	}
	if table.Columns == nil {
		table.Columns = []string{}
	}
	if table.Rows == nil {
		table.Rows = [][]any{}
	}
	return &table, nil
}

// ─── Identity ───────────────────────────────────────────────────────────────

// ListUsers returns all users of the organization.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var list jsonAPIList
	if err := c.getJSON(ctx, "/entities/users?size=500", &list); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(list.Data))
	for _, e := range list.Data {
		var attrs struct {
			FirstName string `json:"firstname"`
			LastName  string `json:"lastname"`
			Email     string `json:"email"`
		}
		_ = json.Unmarshal(e.Attributes, &attrs)
		users = append(users, User{
			ID:    e.ID,
			Name:  strings.TrimSpace(attrs.FirstName + " " + attrs.LastName),
			Email: attrs.Email,
		})
	}
	return users, nil
}

// ListUserGroups returns all user groups of the organization.
func (c *Client) ListUserGroups(ctx context.Context) ([]UserGroup, error) {
	var list jsonAPIList
	if err := c.getJSON(ctx, "/entities/userGroups?size=500", &list); err != nil {
		return nil, err
	}
	groups := make([]UserGroup, 0, len(list.Data))
	for _, e := range list.Data {
		var attrs struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(e.Attributes, &attrs)
		groups = append(groups, UserGroup{ID: e.ID, Name: attrs.Name})
	}
	return groups, nil
}

// GetDeclarativeUsers fetches the declarative identity layout, which
// carries group membership per user.
func (c *Client) GetDeclarativeUsers(ctx context.Context) ([]DeclarativeUser, error) {
	var payload struct {
		Users []struct {
			ID         string `json:"id"`
			UserGroups []struct {
				ID string `json:"id"`
			} `json:"userGroups"`
		} `json:"users"`
	}
	if err := c.getJSON(ctx, "/layout/users", &payload); err != nil {
		return nil, err
	}
	users := make([]DeclarativeUser, 0, len(payload.Users))
	for _, u := range payload.Users {
		groups := make([]string, 0, len(u.UserGroups))
		for _, g := range u.UserGroups {
			groups = append(groups, g.ID)
		}
		users = append(users, DeclarativeUser{ID: u.ID, Groups: groups})
	}
	return users, nil
}

// ─── AI chat ────────────────────────────────────────────────────────────────

// Chat forwards a natural-language question plus the accumulated
// conversation history and returns the backend's textual answer.
func (c *Client) Chat(ctx context.Context, workspace string, history []ChatMessage, message string) (string, error) {
	var payload struct {
		Answer string `json:"answer"`
	}
	body := map[string]any{
		"question":    message,
		"chatHistory": history,
	}
	path := fmt.Sprintf("/actions/workspaces/%s/ai/chat", workspace)
	if err := c.postJSON(ctx, path, body, &payload); err != nil {
		return "", asNotFound(err, "workspace", workspace)
	}
	return payload.Answer, nil
}

// ─── Exports ────────────────────────────────────────────────────────────────

// ExportDashboardPDF renders a dashboard to PDF and streams the
// finished document into w.
func (c *Client) ExportDashboardPDF(ctx context.Context, workspace, dashboardID string, w io.Writer) error {
	base := fmt.Sprintf("/actions/workspaces/%s/export/visual", workspace)
	body := map[string]any{"dashboardId": dashboardID, "fileName": dashboardID}
	if err := c.runExport(ctx, base, body, w); err != nil {
		return asNotFound(err, "dashboard", dashboardID)
	}
	return nil
}

// ExportTabular exports a visualization's data as CSV or XLSX and
// streams the finished file into w. format is "CSV" or "XLSX".
func (c *Client) ExportTabular(ctx context.Context, workspace, visualizationID, format string, w io.Writer) error {
	base := fmt.Sprintf("/actions/workspaces/%s/export/tabular", workspace)
	body := map[string]any{
		"visualizationObject": visualizationID,
		"format":              strings.ToUpper(format),
		"fileName":            visualizationID,
	}
	if err := c.runExport(ctx, base, body, w); err != nil {
		return asNotFound(err, "visualization", visualizationID)
	}
	return nil
}

// runExport submits an export request and polls until the backend has
// produced the artifact, then copies it into w. The export engine
// answers 202 while rendering.
func (c *Client) runExport(ctx context.Context, basePath string, body any, w io.Writer) error {
	var created struct {
		ExportResult string `json:"exportResult"`
	}
	if err := c.postJSON(ctx, basePath, body, &created); err != nil {
		return err
	}

	resultPath := fmt.Sprintf("%s/%s", basePath, created.ExportResult)
	for attempt := 0; attempt < exportPollAttempts; attempt++ {
		resp, err := c.do(ctx, http.MethodGet, resultPath, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusAccepted {
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(exportPollInterval):
			}
			continue
		}
		_, err = io.Copy(w, resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("downloading export: %w", err)
		}
		return nil
	}
	return fmt.Errorf("export %s not ready after %d attempts", created.ExportResult, exportPollAttempts)
}
