package engine

import (
	"sort"
	"strings"
	"time"

	"exterior_chat_backend/internal/dialogue/vocab"
)

// Session is the per-conversation dialogue state. Service and Intent are set
// once their stage is passed and only a full reset clears them.
type Session struct {
	ID           string            `json:"id"`
	Stage        Stage             `json:"stage"`
	Service      vocab.Service     `json:"service,omitempty"`
	Intent       vocab.Intent      `json:"intent,omitempty"`
	IntentTerm   string            `json:"intentTerm,omitempty"`
	ZIP          string            `json:"zip,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	Timeline     string            `json:"timeline,omitempty"`
	ScheduleNote string            `json:"scheduleNote,omitempty"`
	ThanksSeen   bool              `json:"thanksSeen,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewSession creates a fresh session at the start stage.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Stage:     StageStart,
		Details:   make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) setDetail(key, value string) {
	if s.Details == nil {
		s.Details = make(map[string]string)
	}
	s.Details[key] = value
}

// DetailSummary renders the collected details as a stable "key=value" list.
func (s *Session) DetailSummary() string {
	if len(s.Details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.Details))
	for k := range s.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s.Details[k])
	}
	return strings.Join(parts, "; ")
}
