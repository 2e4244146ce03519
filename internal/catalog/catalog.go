// Package catalog implements the read-only operation catalog.
//
// Every operation is a pure function of (backend, workspace, params)
// returning a normalized result. Listing order is whatever the backend
// returned — the catalog never re-sorts. Backend failures arrive
// already typed from the client layer and pass through untouched; this
// package adds the domain-level not-found checks the backend cannot
// express (e.g. a dashboard id missing from the analytics model).
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
	"github.com/stackless-dev/gooddata-cli/internal/gooddata"
)

// Backend is the read capability surface the catalog consumes.
// *gooddata.Client satisfies it; tests substitute fakes.
type Backend interface {
	ListWorkspaces(ctx context.Context) ([]gooddata.Workspace, error)
	GetAnalyticsModel(ctx context.Context, workspace string) (*gooddata.AnalyticsModel, error)
	ListMetrics(ctx context.Context, workspace string) ([]gooddata.Metric, error)
	ListDatasets(ctx context.Context, workspace string) ([]gooddata.Dataset, error)
	GetLogicalDataModel(ctx context.Context, workspace string) (*gooddata.DeclarativeLDM, error)
	GetVisualization(ctx context.Context, workspace, id string) (*gooddata.Visualization, error)
	ExecuteVisualization(ctx context.Context, workspace, id string) (*gooddata.TableData, error)
	ListUsers(ctx context.Context) ([]gooddata.User, error)
	ListUserGroups(ctx context.Context) ([]gooddata.UserGroup, error)
	GetDeclarativeUsers(ctx context.Context) ([]gooddata.DeclarativeUser, error)
}

// ParseKind validates a kind name from a front end.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindWorkspace, KindDashboard, KindInsight, KindMetric, KindDataset:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
}

// ListResources lists entities of one kind. Workspace-scoped kinds
// require a workspace; an empty workspace yields an empty slice, never
// an error.
func ListResources(ctx context.Context, b Backend, workspace string, kind Kind) ([]Resource, error) {
	switch kind {
	case KindWorkspace:
		workspaces, err := b.ListWorkspaces(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Resource, 0, len(workspaces))
		for _, ws := range workspaces {
			out = append(out, Resource{ID: ws.ID, Title: ws.Name})
		}
		return out, nil

	case KindDashboard, KindInsight:
		model, err := b.GetAnalyticsModel(ctx, workspace)
		if err != nil {
			return nil, err
		}
		objects := model.Visualizations
		if kind == KindDashboard {
			objects = model.Dashboards
		}
		out := make([]Resource, 0, len(objects))
		for _, o := range objects {
			out = append(out, Resource{ID: o.ID, Title: o.Title})
		}
		return out, nil

	case KindMetric:
		metrics, err := b.ListMetrics(ctx, workspace)
		if err != nil {
			return nil, err
		}
		out := make([]Resource, 0, len(metrics))
		for _, m := range metrics {
			out = append(out, Resource{ID: m.ID, Title: m.Title, Format: m.Format})
		}
		return out, nil

	case KindDataset:
		datasets, err := b.ListDatasets(ctx, workspace)
		if err != nil {
			return nil, err
		}
		out := make([]Resource, 0, len(datasets))
		for _, d := range datasets {
			out = append(out, Resource{ID: d.ID, Title: d.Title})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// GetDashboardInsights returns the insights referenced by a dashboard's
// layout, resolving widget titles against the visualization objects.
func GetDashboardInsights(ctx context.Context, b Backend, workspace, dashboardID string) (*DashboardInsights, error) {
	model, err := b.GetAnalyticsModel(ctx, workspace)
	if err != nil {
		return nil, err
	}

	dashboard := findObject(model.Dashboards, dashboardID)
	if dashboard == nil {
		return nil, &gderr.NotFoundError{Kind: "dashboard", ID: dashboardID}
	}

	titles := make(map[string]string, len(model.Visualizations))
	for _, viz := range model.Visualizations {
		titles[viz.ID] = viz.Title
	}

	result := &DashboardInsights{
		DashboardID:    dashboardID,
		DashboardTitle: dashboard.Title,
		Insights:       []Widget{},
	}

	layout := mapValue(dashboard.Content, "layout")
	for _, sectionVal := range listValue(layout, "sections") {
		section, ok := sectionVal.(map[string]any)
		if !ok {
			continue
		}
		for _, itemVal := range listValue(section, "items") {
			item, ok := itemVal.(map[string]any)
			if !ok {
				continue
			}
			widget := mapValue(item, "widget")
			if stringValue(widget, "type") != "insight" {
				continue
			}
			identifier := mapValue(mapValue(widget, "insight"), "identifier")
			if stringValue(identifier, "type") != "visualizationObject" {
				continue
			}
			id := stringValue(identifier, "id")
			if id == "" {
				continue
			}
			title := titles[id]
			if title == "" {
				title = stringValue(widget, "title")
			}
			result.Insights = append(result.Insights, Widget{
				ID:          id,
				Title:       title,
				WidgetTitle: stringValue(widget, "title"),
			})
		}
	}
	result.Count = len(result.Insights)
	return result, nil
}

// GetDashboardFilters returns the attribute and date filters of a
// dashboard's filter context.
func GetDashboardFilters(ctx context.Context, b Backend, workspace, dashboardID string) (*DashboardFilters, error) {
	model, err := b.GetAnalyticsModel(ctx, workspace)
	if err != nil {
		return nil, err
	}

	dashboard := findObject(model.Dashboards, dashboardID)
	if dashboard == nil {
		return nil, &gderr.NotFoundError{Kind: "dashboard", ID: dashboardID}
	}

	result := &DashboardFilters{
		DashboardID:      dashboardID,
		DashboardTitle:   dashboard.Title,
		AttributeFilters: []AttributeFilter{},
		DateFilters:      []DateFilter{},
	}

	contextRef := mapValue(dashboard.Content, "filterContextRef")
	result.FilterContextID = stringValue(mapValue(contextRef, "identifier"), "id")
	if result.FilterContextID == "" {
		return result, nil
	}

	filterContext := findObject(model.FilterContexts, result.FilterContextID)
	if filterContext == nil {
		return result, nil
	}

	for _, filterVal := range listValue(filterContext.Content, "filters") {
		filter, ok := filterVal.(map[string]any)
		if !ok {
			continue
		}
		if af := mapValue(filter, "attributeFilter"); len(af) > 0 {
			selectionMode := stringValue(af, "selectionMode")
			if selectionMode == "" {
				selectionMode = "multi"
			}
			result.AttributeFilters = append(result.AttributeFilters, AttributeFilter{
				DisplayForm:       displayFormID(af),
				LocalIdentifier:   stringValue(af, "localIdentifier"),
				NegativeSelection: boolValue(af, "negativeSelection"),
				SelectionMode:     selectionMode,
				SelectedValues:    stringList(mapValue(af, "attributeElements"), "uris"),
			})
			continue
		}
		if df := mapValue(filter, "dateFilter"); len(df) > 0 {
			result.DateFilters = append(result.DateFilters, DateFilter{
				Type:            stringValue(df, "type"),
				Granularity:     stringValue(df, "granularity"),
				From:            df["from"],
				To:              df["to"],
				LocalIdentifier: stringValue(df, "localIdentifier"),
			})
		}
	}
	return result, nil
}

// GetInsightMetadata returns the enriched descriptor of one insight:
// audit fields plus the metrics, attributes, and filters referenced by
// its definition.
func GetInsightMetadata(ctx context.Context, b Backend, workspace, insightID string) (*Metadata, error) {
	viz, err := b.GetVisualization(ctx, workspace, insightID)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		ID:          viz.ID,
		Title:       viz.Title,
		Description: viz.Description,
		Tags:        viz.Tags,
		CreatedAt:   viz.CreatedAt,
		ModifiedAt:  viz.ModifiedAt,
		Metrics:     []Ref{},
		Attributes:  []Ref{},
		Filters:     []Filter{},
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if viz.CreatedBy != nil {
		meta.CreatedBy = userInfo(viz.CreatedBy)
	}
	if viz.ModifiedBy != nil {
		meta.ModifiedBy = userInfo(viz.ModifiedBy)
	}

	meta.VisualizationType = strings.TrimPrefix(stringValue(viz.Content, "visualizationUrl"), "local:")

	for _, bucketVal := range listValue(viz.Content, "buckets") {
		bucket, ok := bucketVal.(map[string]any)
		if !ok {
			continue
		}
		for _, itemVal := range listValue(bucket, "items") {
			item, ok := itemVal.(map[string]any)
			if !ok {
				continue
			}
			if measure := mapValue(item, "measure"); len(measure) > 0 {
				metricID := stringValue(mapValue(mapValue(mapValue(mapValue(measure,
					"definition"), "measureDefinition"), "item"), "identifier"), "id")
				if metricID != "" {
					meta.Metrics = append(meta.Metrics, Ref{ID: metricID, Title: stringValue(measure, "title")})
				}
			}
			if attr := mapValue(item, "attribute"); len(attr) > 0 {
				if id := displayFormID(attr); id != "" {
					meta.Attributes = append(meta.Attributes, Ref{ID: id})
				}
			}
		}
	}

	for _, filterVal := range listValue(viz.Content, "filters") {
		filter, ok := filterVal.(map[string]any)
		if !ok {
			continue
		}
		if pf := mapValue(filter, "positiveAttributeFilter"); len(pf) > 0 {
			meta.Filters = append(meta.Filters, Filter{
				Type:      "positive",
				Attribute: displayFormID(pf),
				Values:    stringList(mapValue(pf, "in"), "values"),
			})
		} else if nf := mapValue(filter, "negativeAttributeFilter"); len(nf) > 0 {
			values := stringList(mapValue(nf, "notIn"), "values")
			if len(values) == 0 {
				values = stringList(mapValue(nf, "notIn"), "uris")
			}
			meta.Filters = append(meta.Filters, Filter{
				Type:      "negative",
				Attribute: displayFormID(nf),
				Values:    values,
			})
		}
	}
	return meta, nil
}

// GetInsightData executes an insight's stored query and returns the
// resulting table.
func GetInsightData(ctx context.Context, b Backend, workspace, insightID string) (*Table, error) {
	viz, err := b.GetVisualization(ctx, workspace, insightID)
	if err != nil {
		return nil, err
	}
	data, err := b.ExecuteVisualization(ctx, workspace, insightID)
	if err != nil {
		return nil, err
	}
	return &Table{ID: viz.ID, Title: viz.Title, Columns: data.Columns, Rows: data.Rows}, nil
}

// GetLogicalDataModel returns the workspace's schema graph with a
// per-dataset summary.
func GetLogicalDataModel(ctx context.Context, b Backend, workspace string) (*LogicalModel, error) {
	ldm, err := b.GetLogicalDataModel(ctx, workspace)
	if err != nil {
		return nil, err
	}
	result := &LogicalModel{
		WorkspaceID:       workspace,
		DatasetCount:      len(ldm.Datasets),
		DateInstanceCount: len(ldm.DateInstances),
		Datasets:          make([]DatasetSummary, 0, len(ldm.Datasets)),
		Model:             ldm.Document,
	}
	for _, ds := range ldm.Datasets {
		result.Datasets = append(result.Datasets, DatasetSummary{
			ID:             ds.ID,
			Title:          ds.Title,
			AttributeCount: len(ds.Attributes),
			FactCount:      len(ds.Facts),
			ReferenceCount: len(ds.References),
		})
	}
	return result, nil
}

// ListUsers lists all users of the organization.
func ListUsers(ctx context.Context, b Backend) ([]gooddata.User, error) {
	users, err := b.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []gooddata.User{}
	}
	return users, nil
}

// ListUserGroups lists all user groups of the organization.
func ListUserGroups(ctx context.Context, b Backend) ([]gooddata.UserGroup, error) {
	groups, err := b.ListUserGroups(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []gooddata.UserGroup{}
	}
	return groups, nil
}

// GetUserGroupMembers resolves the members of one group from the
// declarative identity layout. An unknown group id is not-found even
// when it simply has no members, so the group list is consulted first.
func GetUserGroupMembers(ctx context.Context, b Backend, groupID string) (*GroupMembers, error) {
	groups, err := b.ListUserGroups(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, g := range groups {
		if g.ID == groupID {
			known = true
			break
		}
	}
	if !known {
		return nil, &gderr.NotFoundError{Kind: "group", ID: groupID}
	}

	users, err := b.GetDeclarativeUsers(ctx)
	if err != nil {
		return nil, err
	}
	members := []string{}
	for _, u := range users {
		for _, g := range u.Groups {
			if g == groupID {
				members = append(members, u.ID)
				break
			}
		}
	}
	return &GroupMembers{GroupID: groupID, Members: members}, nil
}

// ─── content walking helpers ────────────────────────────────────────────────

func findObject(objects []gooddata.AnalyticsObject, id string) *gooddata.AnalyticsObject {
	for i := range objects {
		if objects[i].ID == id {
			return &objects[i]
		}
	}
	return nil
}

func userInfo(ref *gooddata.UserRef) *UserInfo {
	return &UserInfo{ID: ref.ID, FirstName: ref.FirstName, LastName: ref.LastName, Email: ref.Email}
}

func mapValue(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func listValue(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	v, _ := m[key].([]any)
	return v
}

func stringValue(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func boolValue(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}

func stringList(m map[string]any, key string) []string {
	out := []string{}
	for _, v := range listValue(m, key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// displayFormID handles both the nested and flat identifier shapes the
// backend emits for display form references.
func displayFormID(m map[string]any) string {
	df := mapValue(m, "displayForm")
	if id := stringValue(mapValue(df, "identifier"), "id"); id != "" {
		return id
	}
	if id := stringValue(df, "identifier"); id != "" {
		return id
	}
	return stringValue(df, "id")
}
