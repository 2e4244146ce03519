package gooddata

import "encoding/json"

// Workspace is one tenant container on the backend.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AnalyticsObject is an entry of the declarative analytics model:
// a dashboard, a visualization, or a filter context. Content carries
// the backend's free-form definition (layout, buckets, filters).
type AnalyticsObject struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Content map[string]any `json:"content"`
}

// AnalyticsModel is the declarative analytics layer of one workspace.
type AnalyticsModel struct {
	Dashboards     []AnalyticsObject
	Visualizations []AnalyticsObject
	FilterContexts []AnalyticsObject
}

// Metric is a stored measure definition.
type Metric struct {
	ID     string
	Title  string
	Format string
}

// Dataset is a logical dataset of a workspace.
type Dataset struct {
	ID    string
	Title string
}

// User is an organization-level identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserGroup is an organization-level group.
type UserGroup struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DeclarativeUser is a user entry of the declarative identity layout,
// including group membership.
type DeclarativeUser struct {
	ID     string
	Groups []string
}

// UserRef identifies the creator or last modifier of an object.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Visualization is a saved insight entity with its audit metadata.
type Visualization struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	CreatedAt   string
	ModifiedAt  string
	CreatedBy   *UserRef
	ModifiedBy  *UserRef
	Content     map[string]any
}

// TableData is the tabular result of executing a stored insight query.
type TableData struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

// LDMDataset summarizes one dataset of the logical data model.
type LDMDataset struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Attributes []json.RawMessage `json:"attributes"`
	Facts      []json.RawMessage `json:"facts"`
	References []json.RawMessage `json:"references"`
}

// DeclarativeLDM is the schema graph of a workspace. Document holds the
// backend's full response verbatim so callers can return it whole.
type DeclarativeLDM struct {
	Datasets      []LDMDataset
	DateInstances []json.RawMessage
	Document      json.RawMessage
}

// ChatMessage is one turn of the natural-language query conversation
// as the backend expects it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
