package catalog

import "encoding/json"

// Kind selects the resource family of a listing operation.
type Kind string

const (
	KindWorkspace Kind = "workspace"
	KindDashboard Kind = "dashboard"
	KindInsight   Kind = "insight"
	KindMetric    Kind = "metric"
	KindDataset   Kind = "dataset"
)

// WorkspaceScoped reports whether listing this kind requires a
// workspace. Workspaces themselves are organization-scoped.
func (k Kind) WorkspaceScoped() bool { return k != KindWorkspace }

// Resource is the normalized descriptor of any listed entity.
type Resource struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Format string `json:"format,omitempty"`
}

// Ref is a referenced object inside an insight definition.
type Ref struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Filter is a normalized attribute filter of an insight.
type Filter struct {
	Type      string   `json:"type"` // "positive" or "negative"
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// Metadata is the enriched descriptor returned for a single insight.
type Metadata struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Tags              []string  `json:"tags"`
	CreatedAt         string    `json:"createdAt,omitempty"`
	ModifiedAt        string    `json:"modifiedAt,omitempty"`
	CreatedBy         *UserInfo `json:"createdBy,omitempty"`
	ModifiedBy        *UserInfo `json:"modifiedBy,omitempty"`
	VisualizationType string    `json:"visualizationType,omitempty"`
	Metrics           []Ref     `json:"metrics"`
	Attributes        []Ref     `json:"attributes"`
	Filters           []Filter  `json:"filters"`
}

// UserInfo identifies a creator or modifier.
type UserInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Table is ordered tabular data from an executed insight.
type Table struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

// DashboardInsights lists the insights referenced by one dashboard.
type DashboardInsights struct {
	DashboardID    string   `json:"dashboard_id"`
	DashboardTitle string   `json:"dashboard_title"`
	Insights       []Widget `json:"insights"`
	Count          int      `json:"insight_count"`
}

// Widget is one insight placement on a dashboard.
type Widget struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	WidgetTitle string `json:"widget_title,omitempty"`
}

// AttributeFilter is a dropdown filter configured on a dashboard.
type AttributeFilter struct {
	DisplayForm       string   `json:"displayForm"`
	LocalIdentifier   string   `json:"localIdentifier,omitempty"`
	NegativeSelection bool     `json:"negativeSelection"`
	SelectionMode     string   `json:"selectionMode"`
	SelectedValues    []string `json:"selectedValues"`
}

// DateFilter is a date range filter configured on a dashboard.
type DateFilter struct {
	Type            string `json:"type,omitempty"`
	Granularity     string `json:"granularity,omitempty"`
	From            any    `json:"from,omitempty"`
	To              any    `json:"to,omitempty"`
	LocalIdentifier string `json:"localIdentifier,omitempty"`
}

// DashboardFilters describes the filter context of one dashboard.
type DashboardFilters struct {
	DashboardID      string            `json:"dashboard_id"`
	DashboardTitle   string            `json:"dashboard_title"`
	FilterContextID  string            `json:"filter_context_id,omitempty"`
	AttributeFilters []AttributeFilter `json:"attribute_filters"`
	DateFilters      []DateFilter      `json:"date_filters"`
}

// DatasetSummary counts the parts of one dataset in the schema graph.
type DatasetSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AttributeCount int    `json:"attribute_count"`
	FactCount      int    `json:"fact_count"`
	ReferenceCount int    `json:"reference_count"`
}

// LogicalModel is the schema graph of a workspace: a summary plus the
// backend's full document, returned whole.
type LogicalModel struct {
	WorkspaceID       string           `json:"workspace_id"`
	DatasetCount      int              `json:"dataset_count"`
	DateInstanceCount int              `json:"date_instance_count"`
	Datasets          []DatasetSummary `json:"datasets"`
	Model             json.RawMessage  `json:"ldm"`
}

// GroupMembers lists the user ids belonging to one group.
type GroupMembers struct {
	GroupID string   `json:"group_id"`
	Members []string `json:"members"`
}
