package ai

import "strings"

// Markers wrapped around contiguous reasoning spans in merged output.
const (
	ThinkOpen  = "<think>"
	ThinkClose = "</think>"
)

// Merger reconstructs a single ordered text stream from the two delta
// channels of a generation response. Contiguous runs of reasoning text are
// wrapped in ThinkOpen/ThinkClose markers; visible text passes through
// unchanged. The merger is a two-state machine: outside a reasoning span or
// inside one.
//
// Each Push produces exactly one emission carrying the append fragment and
// the full accumulated text; Finish produces at most one final synthetic
// emission closing a still-open reasoning span, so every opening marker
// always has a matching close. An opening marker is never emitted without
// reasoning text following it in the same emission.
//
// A Merger belongs to one generation call and is not safe for concurrent
// use.
type Merger struct {
	inThink bool
	acc     strings.Builder
	emit    DeltaHandler
}

// NewMerger creates a merger that reports emissions to onEmit. A nil handler
// is allowed; the merger then only accumulates.
func NewMerger(onEmit DeltaHandler) *Merger {
	return &Merger{emit: onEmit}
}

// Push folds one delta into the output stream. Reasoning text is handled
// before visible text when a delta carries both. Empty deltas emit nothing.
func (m *Merger) Push(delta StreamDelta) {
	if delta.Empty() {
		return
	}

	var fragment strings.Builder

	if delta.Reasoning != "" {
		if !m.inThink {
			fragment.WriteString(ThinkOpen)
			m.inThink = true
		}
		fragment.WriteString(delta.Reasoning)
	}

	if delta.Content != "" {
		if m.inThink {
			fragment.WriteString(ThinkClose)
			m.inThink = false
		}
		fragment.WriteString(delta.Content)
	}

	m.append(fragment.String())
}

// Finish closes a still-open reasoning span with one synthetic emission.
// Calling Finish on a well-formed stream is a no-op; calling it twice is
// safe.
func (m *Merger) Finish() {
	if !m.inThink {
		return
	}
	m.inThink = false
	m.append(ThinkClose)
}

// Text returns the accumulated output so far.
func (m *Merger) Text() string {
	return m.acc.String()
}

func (m *Merger) append(fragment string) {
	m.acc.WriteString(fragment)
	if m.emit != nil {
		m.emit(fragment, m.acc.String())
	}
}

// StripThink removes every marker-delimited reasoning span from merged
// output, leaving only the visible answer text. Useful when feeding an
// assistant turn back into a conversation: reasoning is display-only and
// must not be resent to the model.
func StripThink(s string) string {
	var out strings.Builder
	for {
		open := strings.Index(s, ThinkOpen)
		if open < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:open])
		rest := s[open+len(ThinkOpen):]
		end := strings.Index(rest, ThinkClose)
		if end < 0 {
			// Unterminated span: drop the remainder, it is all reasoning.
			return out.String()
		}
		s = rest[end+len(ThinkClose):]
	}
}
