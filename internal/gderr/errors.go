// Package gderr defines the error taxonomy shared by both front ends.
//
// Every failure that crosses a package boundary is one of the types below.
// The catalog and export pipeline translate raw backend conditions into
// these types, so the CLI and the MCP adapter never see transport-level
// errors directly.
package gderr

import (
	"errors"
	"fmt"
)

// Stable machine-readable kinds, used in --json error objects and in
// MCP tool error results.
const (
	KindConfiguration         = "configuration"
	KindAuthentication        = "authentication"
	KindWorkspaceNotSpecified = "workspace_not_specified"
	KindNotFound              = "not_found"
	KindQueryExecution        = "query_execution"
	KindExport                = "export"
	KindInternal              = "internal"
)

// ConfigurationError reports missing or invalid ambient configuration.
type ConfigurationError struct {
	Missing string // name of the missing setting, e.g. "GOODDATA_HOST"
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s is not set", e.Missing)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AuthenticationError reports that the backend rejected the credentials.
type AuthenticationError struct {
	Status int // HTTP status reported by the backend, 0 if unknown
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication rejected by backend (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("authentication rejected by backend: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// WorkspaceNotSpecifiedError reports that no workspace was given and no
// default is configured. Fatal for the call, never for the process.
type WorkspaceNotSpecifiedError struct{}

func (e *WorkspaceNotSpecifiedError) Error() string {
	return "no workspace specified: pass --workspace or set GOODDATA_WORKSPACE"
}

// NotFoundError reports an identifier that did not resolve on the backend.
type NotFoundError struct {
	Kind string // "dashboard", "insight", "group", ...
	ID   string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// QueryExecutionError reports a query the backend refused to execute,
// with whatever detail the backend provided.
type QueryExecutionError struct {
	InsightID string
	Detail    string
	Err       error
}

func (e *QueryExecutionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("query execution failed for %q: %s", e.InsightID, e.Detail)
	}
	return fmt.Sprintf("query execution failed for %q: %v", e.InsightID, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// ExportError reports an export that failed to produce an artifact.
// When this error is returned, no file exists at the target path.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s failed: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Kind classifies err into one of the taxonomy kinds. Unrecognized
// errors classify as KindInternal.
func Kind(err error) string {
	var (
		cfg   *ConfigurationError
		auth  *AuthenticationError
		ws    *WorkspaceNotSpecifiedError
		nf    *NotFoundError
		query *QueryExecutionError
		exp   *ExportError
	)
	switch {
	case errors.As(err, &cfg):
		return KindConfiguration
	case errors.As(err, &auth):
		return KindAuthentication
	case errors.As(err, &ws):
		return KindWorkspaceNotSpecified
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &query):
		return KindQueryExecution
	case errors.As(err, &exp):
		return KindExport
	default:
		return KindInternal
	}
}

// JSONError is the structured error object emitted on stdout when the
// CLI runs with --json, and embedded in MCP tool error results.
type JSONError struct {
	Kind    string `json:"kind"`
	Message string `json:"error"`
}

// JSONObject builds the structured representation of err.
func JSONObject(err error) JSONError {
	return JSONError{Kind: Kind(err), Message: err.Error()}
}
