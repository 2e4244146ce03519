package gooddata

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestListWorkspaces_ParsesEntities(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entities/workspaces", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "ws1", "attributes": map[string]any{"name": "Sales"}},
				{"id": "ws2", "attributes": map[string]any{"name": "Marketing"}},
			},
		})
	}))

	workspaces, err := c.ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, Workspace{ID: "ws1", Name: "Sales"}, workspaces[0])
	assert.Equal(t, Workspace{ID: "ws2", Name: "Marketing"}, workspaces[1])
}

func TestDo_MapsUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListWorkspaces(context.Background())
	require.Error(t, err)
	assert.Equal(t, gderr.KindAuthentication, gderr.Kind(err))
}

func TestGetVisualization_MapsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no such object"}`, http.StatusNotFound)
	}))

	_, err := c.GetVisualization(context.Background(), "ws1", "missing")
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestGetVisualization_SideLoadsUsers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id": "viz1",
				"attributes": map[string]any{
					"title":     "Revenue by Region",
					"tags":      []string{"finance"},
					"createdAt": "2024-01-01T00:00:00Z",
				},
				"relationships": map[string]any{
					"createdBy": map[string]any{"data": map[string]any{"id": "u1"}},
				},
			},
			"included": []map[string]any{
				{
					"id":   "u1",
					"type": "userIdentifier",
					"attributes": map[string]any{
						"firstname": "Ada", "lastname": "Lovelace", "email": "ada@example.com",
					},
				},
			},
		})
	}))

	viz, err := c.GetVisualization(context.Background(), "ws1", "viz1")
	require.NoError(t, err)
	assert.Equal(t, "Revenue by Region", viz.Title)
	assert.Equal(t, []string{"finance"}, viz.Tags)
	require.NotNil(t, viz.CreatedBy)
	assert.Equal(t, "Ada", viz.CreatedBy.FirstName)
	assert.Equal(t, "ada@example.com", viz.CreatedBy.Email)
}

func TestExecuteVisualization_MapsQueryRejection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":         "viz1",
					"attributes": map[string]any{"title": "Broken", "content": map[string]any{}},
				},
			})
		default:
			http.Error(w, `{"detail":"invalid filter"}`, http.StatusBadRequest)
		}
	}))

	_, err := c.ExecuteVisualization(context.Background(), "ws1", "viz1")
	require.Error(t, err)
	assert.Equal(t, gderr.KindQueryExecution, gderr.Kind(err))
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestExecuteVisualization_ReturnsTable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/entities/workspaces/ws1/visualizationObjects/viz1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":         "viz1",
					"attributes": map[string]any{"title": "Revenue", "content": map[string]any{}},
				},
			})
		case "/api/v1/actions/workspaces/ws1/execution/afm/execute":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"executionResponse": map[string]any{"links": map[string]any{"executionResult": "res-1"}},
			})
		case "/api/v1/actions/workspaces/ws1/execution/afm/execute/result/res-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"columns": []string{"region", "revenue"},
				"data":    [][]any{{"EMEA", 100.5}, {"APAC", 42.0}},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	table, err := c.ExecuteVisualization(context.Background(), "ws1", "viz1")
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "revenue"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "EMEA", table.Rows[0][0])
}

func TestChat_SendsHistory(t *testing.T) {
	var got struct {
		Question    string        `json:"question"`
		ChatHistory []ChatMessage `json:"chatHistory"`
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"answer": "42"})
	}))

	history := []ChatMessage{{Role: "user", Content: "Q1"}, {Role: "assistant", Content: "A1"}}
	answer, err := c.Chat(context.Background(), "ws1", history, "Q2")
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Equal(t, "Q2", got.Question)
	assert.Equal(t, history, got.ChatHistory)
}

func TestExportTabular_PollsUntilReady(t *testing.T) {
	orig := exportPollInterval
	exportPollInterval = time.Millisecond
	t.Cleanup(func() { exportPollInterval = orig })

	polls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{"exportResult": "exp-1"})
		case polls == 0:
			polls++
			w.WriteHeader(http.StatusAccepted)
		default:
			_, _ = w.Write([]byte("a,b\n1,2\n"))
		}
	}))

	var buf bytes.Buffer
	err := c.ExportTabular(context.Background(), "ws1", "viz1", "csv", &buf)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestExportDashboardPDF_MapsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such dashboard", http.StatusNotFound)
	}))

	var buf bytes.Buffer
	err := c.ExportDashboardPDF(context.Background(), "ws1", "dash-x", &buf)
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
}
