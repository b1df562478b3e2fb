package events

import (
	"sort"
	"strings"
)

// Log records which domain-event tokens have fired during a session.
// Requirement checks of the form `event:<token>` read it; save files
// snapshot it.
type Log struct {
	tokens map[string]struct{}
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{tokens: make(map[string]struct{})}
}

// Add records a token. Blank tokens are ignored.
func (l *Log) Add(token string) {
	t := strings.TrimSpace(token)
	if t == "" {
		return
	}
	l.tokens[t] = struct{}{}
}

// Has reports whether the token has been recorded.
func (l *Log) Has(token string) bool {
	_, ok := l.tokens[token]
	return ok
}

// Tokens returns the recorded tokens in sorted order.
func (l *Log) Tokens() []string {
	out := make([]string, 0, len(l.tokens))
	for t := range l.tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clear removes every recorded token.
func (l *Log) Clear() {
	l.tokens = make(map[string]struct{})
}

// Load replaces the log contents with the given tokens.
func (l *Log) Load(tokens []string) {
	l.Clear()
	for _, t := range tokens {
		l.Add(t)
	}
}
