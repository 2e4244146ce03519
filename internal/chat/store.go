// Package chat holds the conversational state for the natural-language
// query feature.
//
// Histories live only in process memory, keyed by workspace. Each
// workspace key has its own lock so turn ordering within a workspace is
// strict while different workspaces converse independently.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/stackless-dev/gooddata-cli/internal/gooddata"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a workspace's conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// maxTurns caps a workspace's history. When the cap is reached the
// oldest user/assistant pair is dropped before appending.
const maxTurns = 100

// Responder is the natural-language capability of the backend.
type Responder interface {
	Chat(ctx context.Context, workspace string, history []gooddata.ChatMessage, message string) (string, error)
}

// Store keeps per-workspace conversation histories.
type Store struct {
	mu        sync.Mutex
	histories map[string][]Turn
	locks     map[string]*sync.Mutex
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{
		histories: make(map[string][]Turn),
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex guarding one workspace's history,
// creating it on first use.
func (s *Store) lockFor(workspace string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[workspace]
	if !ok {
		l = &sync.Mutex{}
		s.locks[workspace] = l
	}
	return l
}

// History returns a copy of the workspace's conversation in order.
func (s *Store) History(workspace string) []Turn {
	l := s.lockFor(workspace)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	turns := s.histories[workspace]
	s.mu.Unlock()

	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Reset discards the workspace's history.
func (s *Store) Reset(workspace string) {
	l := s.lockFor(workspace)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	delete(s.histories, workspace)
	s.mu.Unlock()
}

// Converse processes one chat message: with reset, the history is
// discarded first; the user turn is appended, the backend is invoked
// with the prior history, and the assistant's reply is appended. The
// whole exchange holds the workspace lock, so concurrent calls for the
// same workspace serialize and turn pairs never interleave.
func (s *Store) Converse(ctx context.Context, r Responder, workspace, message string, reset bool) (string, error) {
	l := s.lockFor(workspace)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	turns := s.histories[workspace]
	s.mu.Unlock()

	// A requested reset takes effect before the backend is consulted,
	// so the history is gone even when the exchange itself fails.
	if reset {
		turns = nil
		s.mu.Lock()
		delete(s.histories, workspace)
		s.mu.Unlock()
	}

	history := make([]gooddata.ChatMessage, len(turns))
	for i, t := range turns {
		history[i] = gooddata.ChatMessage{Role: string(t.Role), Content: t.Message}
	}

	answer, err := r.Chat(ctx, workspace, history, message)
	if err != nil {
		// Failed exchanges leave no trace in the history.
		return "", fmt.Errorf("chat with workspace %s: %w", workspace, err)
	}

	turns = append(turns, Turn{Role: RoleUser, Message: message}, Turn{Role: RoleAssistant, Message: answer})
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	s.mu.Lock()
	s.histories[workspace] = turns
	s.mu.Unlock()

	return answer, nil
}
