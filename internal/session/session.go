// Package session ties a resolved configuration to the backend client
// and the conversation store. One Session serves a whole process; the
// CLI and the tool server both hang off it.
package session

import (
	"sync"

	"github.com/stackless-dev/gooddata-cli/internal/chat"
	"github.com/stackless-dev/gooddata-cli/internal/config"
	"github.com/stackless-dev/gooddata-cli/internal/gderr"
	"github.com/stackless-dev/gooddata-cli/internal/gooddata"
)

// Session carries the configuration and the lazily created backend
// handle. The client is built on first use and reused afterwards.
type Session struct {
	cfg config.Config

	once   sync.Once
	client *gooddata.Client

	chatStore *chat.Store
}

// New creates a session for the given configuration.
func New(cfg config.Config) *Session {
	return &Session{cfg: cfg, chatStore: chat.NewStore()}
}

// Config returns the resolved configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Backend returns the shared API client, creating it on first call.
func (s *Session) Backend() *gooddata.Client {
	s.once.Do(func() {
		s.client = gooddata.NewClient(s.cfg.Host, s.cfg.Token)
	})
	return s.client
}

// Chat returns the conversation store.
func (s *Session) Chat() *chat.Store { return s.chatStore }

// ResolveWorkspace picks the workspace for an operation: an explicit
// id wins, otherwise the configured default applies. With neither, the
// operation cannot proceed.
func (s *Session) ResolveWorkspace(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.cfg.Workspace != "" {
		return s.cfg.Workspace, nil
	}
	return "", &gderr.WorkspaceNotSpecifiedError{}
}
