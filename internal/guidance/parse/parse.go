// Package parse turns raw model text into a guidance payload and applies the
// server-side safety fields that the model is never trusted to set.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

type Outcome int

const (
	Parsed Outcome = iota
	Fallback
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the outcome of one parse attempt. Payload is always non-nil; Err
// holds the decode error on the Fallback branch.
type Result struct {
	Outcome Outcome
	Payload *guidance.Payload
	Err     error
}

// Parse decodes raw as a payload object. Anything that is not a JSON object
// becomes a fallback payload carrying raw verbatim as the response. Inside an
// object each field is decoded on its own: a field with the wrong type is
// dropped and the rest of the answer is kept.
func Parse(raw string, intent guidance.Intent) Result {
	clean := stripFences(raw)
	if !strings.HasPrefix(clean, "{") {
		return fallback(raw, intent, errNotObject)
	}

	var fields map[string]json.RawMessage
	dec := json.NewDecoder(strings.NewReader(clean))
	if err := dec.Decode(&fields); err != nil {
		return fallback(raw, intent, err)
	}
	if dec.More() {
		return fallback(raw, intent, errTrailingData)
	}

	p := decodeFields(fields)
	if strings.TrimSpace(p.Intent) == "" {
		p.Intent = intent.String()
	}
	p.Normalize()
	return Result{Outcome: Parsed, Payload: p}
}

func decodeFields(fields map[string]json.RawMessage) *guidance.Payload {
	p := &guidance.Payload{}
	field(fields, "response", &p.Response)
	field(fields, "explanation", &p.Explanation)
	field(fields, "recommendation", &p.Recommendation)
	field(fields, "reflection_prayer", &p.ReflectionPrayer)
	field(fields, "follow_up_question", &p.FollowUpQuestion)
	field(fields, "intent", &p.Intent)
	field(fields, "escalation", &p.Escalation)
	field(fields, "disclaimer", &p.Disclaimer)
	p.ScripturePathway = elements[guidance.ScriptureEntry](fields["scripture_pathway"])
	p.NextSteps = elements[string](fields["next_steps"])
	return p
}

// field decodes fields[name] into dst and leaves dst at its zero value when
// the key is absent or the value has the wrong type.
func field[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// elements decodes a JSON array item by item, skipping null items and items
// of the wrong type. A value that is not an array yields nil.
func elements[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(string(item)) == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func fallback(raw string, intent guidance.Intent, err error) Result {
	return Result{
		Outcome: Fallback,
		Payload: &guidance.Payload{
			Response:         raw,
			ScripturePathway: []guidance.ScriptureEntry{},
			NextSteps:        []string{},
			Intent:           intent.String(),
		},
		Err: err,
	}
}

// stripFences removes a surrounding ```json fence, which models add despite
// being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
