package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
	"github.com/stackless-dev/gooddata-cli/internal/gooddata"
)

// fakeBackend serves canned catalog content.
type fakeBackend struct {
	workspaces []gooddata.Workspace
	model      *gooddata.AnalyticsModel
	metrics    []gooddata.Metric
	datasets   []gooddata.Dataset
	ldm        *gooddata.DeclarativeLDM
	viz        map[string]*gooddata.Visualization
	tables     map[string]*gooddata.TableData
	users      []gooddata.User
	groups     []gooddata.UserGroup
	declUsers  []gooddata.DeclarativeUser
	err        error
}

func (f *fakeBackend) ListWorkspaces(context.Context) ([]gooddata.Workspace, error) {
	return f.workspaces, f.err
}

func (f *fakeBackend) GetAnalyticsModel(_ context.Context, _ string) (*gooddata.AnalyticsModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func (f *fakeBackend) ListMetrics(_ context.Context, _ string) ([]gooddata.Metric, error) {
	return f.metrics, f.err
}

func (f *fakeBackend) ListDatasets(_ context.Context, _ string) ([]gooddata.Dataset, error) {
	return f.datasets, f.err
}

func (f *fakeBackend) GetLogicalDataModel(_ context.Context, _ string) (*gooddata.DeclarativeLDM, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ldm, nil
}

func (f *fakeBackend) GetVisualization(_ context.Context, _, id string) (*gooddata.Visualization, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.viz[id]
	if !ok {
		return nil, &gderr.NotFoundError{Kind: "visualization", ID: id}
	}
	return v, nil
}

func (f *fakeBackend) ExecuteVisualization(_ context.Context, _, id string) (*gooddata.TableData, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tables[id]
	if !ok {
		return nil, &gderr.QueryExecutionError{InsightID: id, Detail: "no result"}
	}
	return t, nil
}

func (f *fakeBackend) ListUsers(context.Context) ([]gooddata.User, error) {
	return f.users, f.err
}

func (f *fakeBackend) ListUserGroups(context.Context) ([]gooddata.UserGroup, error) {
	return f.groups, f.err
}

func (f *fakeBackend) GetDeclarativeUsers(context.Context) ([]gooddata.DeclarativeUser, error) {
	return f.declUsers, f.err
}

func jsonContent(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("dashboard")
	require.NoError(t, err)
	assert.Equal(t, KindDashboard, k)
	assert.True(t, k.WorkspaceScoped())

	_, err = ParseKind("report")
	assert.Error(t, err)
}

func TestListResources_PreservesBackendOrder(t *testing.T) {
	b := &fakeBackend{workspaces: []gooddata.Workspace{
		{ID: "zeta", Name: "Zeta"},
		{ID: "alpha", Name: "Alpha"},
	}}

	resources, err := ListResources(context.Background(), b, "", KindWorkspace)
	require.NoError(t, err)
	assert.Equal(t, []Resource{
		{ID: "zeta", Title: "Zeta"},
		{ID: "alpha", Title: "Alpha"},
	}, resources)
}

func TestListResources_MetricsKeepFormat(t *testing.T) {
	b := &fakeBackend{metrics: []gooddata.Metric{
		{ID: "m1", Title: "Revenue", Format: "#,##0.00"},
	}}

	resources, err := ListResources(context.Background(), b, "ws1", KindMetric)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "#,##0.00", resources[0].Format)
}

func TestListResources_EmptyIsSliceNotNil(t *testing.T) {
	b := &fakeBackend{model: &gooddata.AnalyticsModel{}}

	resources, err := ListResources(context.Background(), b, "ws1", KindDashboard)
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestListResources_PropagatesBackendError(t *testing.T) {
	b := &fakeBackend{err: &gderr.AuthenticationError{Status: 401}}

	_, err := ListResources(context.Background(), b, "", KindWorkspace)
	require.Error(t, err)
	assert.Equal(t, gderr.KindAuthentication, gderr.Kind(err))
}

func dashboardModel(t *testing.T) *gooddata.AnalyticsModel {
	t.Helper()
	return &gooddata.AnalyticsModel{
		Dashboards: []gooddata.AnalyticsObject{
			{
				ID:    "dash1",
				Title: "Sales Overview",
				Content: jsonContent(t, `{
					"filterContextRef": {"identifier": {"id": "fc1", "type": "filterContext"}},
					"layout": {"sections": [
						{"items": [
							{"widget": {
								"type": "insight", "title": "Revenue (widget)",
								"insight": {"identifier": {"id": "viz1", "type": "visualizationObject"}}
							}},
							{"widget": {"type": "richText", "content": "hello"}}
						]},
						{"items": [
							{"widget": {
								"type": "insight", "title": "",
								"insight": {"identifier": {"id": "viz2", "type": "visualizationObject"}}
							}}
						]}
					]}
				}`),
			},
		},
		Visualizations: []gooddata.AnalyticsObject{
			{ID: "viz1", Title: "Revenue by Region"},
			{ID: "viz2", Title: "Orders over Time"},
		},
		FilterContexts: []gooddata.AnalyticsObject{
			{
				ID: "fc1",
				Content: jsonContent(t, `{
					"filters": [
						{"attributeFilter": {
							"displayForm": {"identifier": {"id": "label.region", "type": "label"}},
							"localIdentifier": "af1",
							"negativeSelection": true,
							"attributeElements": {"uris": ["EMEA", "APAC"]}
						}},
						{"dateFilter": {
							"type": "relative", "granularity": "GDC.time.month",
							"from": -11, "to": 0
						}}
					]
				}`),
			},
		},
	}
}

func TestGetDashboardInsights_WalksLayout(t *testing.T) {
	b := &fakeBackend{model: dashboardModel(t)}

	result, err := GetDashboardInsights(context.Background(), b, "ws1", "dash1")
	require.NoError(t, err)
	assert.Equal(t, "Sales Overview", result.DashboardTitle)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Insights, 2)
	assert.Equal(t, Widget{ID: "viz1", Title: "Revenue by Region", WidgetTitle: "Revenue (widget)"}, result.Insights[0])
	// Widget without a title falls back to the visualization title.
	assert.Equal(t, "Orders over Time", result.Insights[1].Title)
}

func TestGetDashboardInsights_UnknownDashboard(t *testing.T) {
	b := &fakeBackend{model: dashboardModel(t)}

	_, err := GetDashboardInsights(context.Background(), b, "ws1", "nope")
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestGetDashboardFilters_ParsesFilterContext(t *testing.T) {
	b := &fakeBackend{model: dashboardModel(t)}

	result, err := GetDashboardFilters(context.Background(), b, "ws1", "dash1")
	require.NoError(t, err)
	assert.Equal(t, "fc1", result.FilterContextID)

	require.Len(t, result.AttributeFilters, 1)
	af := result.AttributeFilters[0]
	assert.Equal(t, "label.region", af.DisplayForm)
	assert.True(t, af.NegativeSelection)
	assert.Equal(t, "multi", af.SelectionMode)
	assert.Equal(t, []string{"EMEA", "APAC"}, af.SelectedValues)

	require.Len(t, result.DateFilters, 1)
	assert.Equal(t, "relative", result.DateFilters[0].Type)
	assert.Equal(t, "GDC.time.month", result.DateFilters[0].Granularity)
}

func TestGetDashboardFilters_NoFilterContext(t *testing.T) {
	b := &fakeBackend{model: &gooddata.AnalyticsModel{
		Dashboards: []gooddata.AnalyticsObject{
			{ID: "dash1", Title: "Bare", Content: map[string]any{}},
		},
	}}

	result, err := GetDashboardFilters(context.Background(), b, "ws1", "dash1")
	require.NoError(t, err)
	assert.Empty(t, result.FilterContextID)
	assert.Empty(t, result.AttributeFilters)
	assert.Empty(t, result.DateFilters)
}

func TestGetInsightMetadata_ExtractsDefinition(t *testing.T) {
	b := &fakeBackend{viz: map[string]*gooddata.Visualization{
		"viz1": {
			ID:         "viz1",
			Title:      "Revenue by Region",
			Tags:       []string{"finance"},
			CreatedAt:  "2024-01-01T00:00:00Z",
			ModifiedAt: "2024-06-01T00:00:00Z",
			CreatedBy:  &gooddata.UserRef{ID: "u1", FirstName: "Ada", LastName: "Lovelace"},
			Content: jsonContent(t, `{
				"visualizationUrl": "local:table",
				"buckets": [
					{"localIdentifier": "measures", "items": [
						{"measure": {
							"localIdentifier": "m1", "title": "Revenue",
							"definition": {"measureDefinition": {"item": {"identifier": {"id": "metric.revenue", "type": "measure"}}}}
						}}
					]},
					{"localIdentifier": "view", "items": [
						{"attribute": {
							"localIdentifier": "a1",
							"displayForm": {"identifier": {"id": "label.region", "type": "label"}}
						}}
					]}
				],
				"filters": [
					{"positiveAttributeFilter": {
						"displayForm": {"identifier": {"id": "label.country", "type": "label"}},
						"in": {"values": ["US", "DE"]}
					}},
					{"negativeAttributeFilter": {
						"displayForm": {"identifier": {"id": "label.segment", "type": "label"}},
						"notIn": {"values": ["Internal"]}
					}}
				]
			}`),
		},
	}}

	meta, err := GetInsightMetadata(context.Background(), b, "ws1", "viz1")
	require.NoError(t, err)
	assert.Equal(t, "table", meta.VisualizationType)
	assert.Equal(t, []Ref{{ID: "metric.revenue", Title: "Revenue"}}, meta.Metrics)
	assert.Equal(t, []Ref{{ID: "label.region"}}, meta.Attributes)
	require.Len(t, meta.Filters, 2)
	assert.Equal(t, Filter{Type: "positive", Attribute: "label.country", Values: []string{"US", "DE"}}, meta.Filters[0])
	assert.Equal(t, Filter{Type: "negative", Attribute: "label.segment", Values: []string{"Internal"}}, meta.Filters[1])
	require.NotNil(t, meta.CreatedBy)
	assert.Equal(t, "Ada", meta.CreatedBy.FirstName)
}

func TestGetInsightMetadata_UnknownInsight(t *testing.T) {
	b := &fakeBackend{viz: map[string]*gooddata.Visualization{}}

	_, err := GetInsightMetadata(context.Background(), b, "ws1", "missing")
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
}

func TestGetInsightData_JoinsTitleAndTable(t *testing.T) {
	b := &fakeBackend{
		viz: map[string]*gooddata.Visualization{
			"viz1": {ID: "viz1", Title: "Revenue", Content: map[string]any{}},
		},
		tables: map[string]*gooddata.TableData{
			"viz1": {Columns: []string{"region", "revenue"}, Rows: [][]any{{"EMEA", 100.5}}},
		},
	}

	table, err := GetInsightData(context.Background(), b, "ws1", "viz1")
	require.NoError(t, err)
	assert.Equal(t, "Revenue", table.Title)
	assert.Equal(t, []string{"region", "revenue"}, table.Columns)
	require.Len(t, table.Rows, 1)
}

func TestGetInsightData_ExecutionFailure(t *testing.T) {
	b := &fakeBackend{
		viz: map[string]*gooddata.Visualization{
			"viz1": {ID: "viz1", Title: "Broken", Content: map[string]any{}},
		},
	}

	_, err := GetInsightData(context.Background(), b, "ws1", "viz1")
	require.Error(t, err)
	assert.Equal(t, gderr.KindQueryExecution, gderr.Kind(err))
}

func TestGetLogicalDataModel_Summarizes(t *testing.T) {
	doc := json.RawMessage(`{"ldm":{"datasets":[]}}`)
	b := &fakeBackend{ldm: &gooddata.DeclarativeLDM{
		Datasets: []gooddata.LDMDataset{
			{
				ID: "ds1", Title: "Orders",
				Attributes: []json.RawMessage{{}, {}},
				Facts:      []json.RawMessage{{}},
				References: []json.RawMessage{{}},
			},
		},
		DateInstances: []json.RawMessage{{}, {}},
		Document:      doc,
	}}

	model, err := GetLogicalDataModel(context.Background(), b, "ws1")
	require.NoError(t, err)
	assert.Equal(t, "ws1", model.WorkspaceID)
	assert.Equal(t, 1, model.DatasetCount)
	assert.Equal(t, 2, model.DateInstanceCount)
	require.Len(t, model.Datasets, 1)
	assert.Equal(t, DatasetSummary{
		ID: "ds1", Title: "Orders",
		AttributeCount: 2, FactCount: 1, ReferenceCount: 1,
	}, model.Datasets[0])
	assert.Equal(t, doc, model.Model)
}

func TestGetUserGroupMembers_ScansDeclarativeUsers(t *testing.T) {
	b := &fakeBackend{
		groups: []gooddata.UserGroup{{ID: "admins", Name: "Admins"}},
		declUsers: []gooddata.DeclarativeUser{
			{ID: "u1", Groups: []string{"admins", "devs"}},
			{ID: "u2", Groups: []string{"devs"}},
			{ID: "u3", Groups: []string{"admins"}},
		},
	}

	members, err := GetUserGroupMembers(context.Background(), b, "admins")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, members.Members)
}

func TestGetUserGroupMembers_UnknownGroup(t *testing.T) {
	b := &fakeBackend{groups: []gooddata.UserGroup{{ID: "admins"}}}

	_, err := GetUserGroupMembers(context.Background(), b, "ghosts")
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
}

func TestGetUserGroupMembers_EmptyGroupIsEmptySlice(t *testing.T) {
	b := &fakeBackend{
		groups:    []gooddata.UserGroup{{ID: "empty"}},
		declUsers: []gooddata.DeclarativeUser{{ID: "u1", Groups: []string{"other"}}},
	}

	members, err := GetUserGroupMembers(context.Background(), b, "empty")
	require.NoError(t, err)
	assert.NotNil(t, members.Members)
	assert.Empty(t, members.Members)
}
