package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gloryco/thewell/internal/guidance/prompt"
	"github.com/gloryco/thewell/internal/platform/apierr"
)

// Request is one decoded guidance question.
type Request struct {
	Query       string
	Mode        string
	Depth       string
	System      string
	Developer   string
	Constraints prompt.Constraints

	// RequestID is set by the transport and only used for logs and events.
	RequestID string
}

type wireRequest struct {
	Query   json.RawMessage `json:"query"`
	Mode    json.RawMessage `json:"mode"`
	Depth   json.RawMessage `json:"depth"`
	Prompts json.RawMessage `json:"prompts"`
	Config  json.RawMessage `json:"config"`
}

type wirePrompts struct {
	System    json.RawMessage `json:"system"`
	Developer json.RawMessage `json:"developer"`
}

type wireConfig struct {
	TranslationOrder json.RawMessage `json:"translationOrder"`
	XrefLimit        json.RawMessage `json:"xrefLimit"`
	MaxQuoteWords    json.RawMessage `json:"maxQuoteWords"`
}

var (
	errInvalidJSON   = errors.New("request body is not valid JSON")
	errQueryRequired = errors.New("query must be a non-empty string")
)

// DecodeRequest reads a request body leniently: valid JSON that is not an
// object counts as {}, optional scalars are stringified and anything of the
// wrong shape is ignored. Only unparseable JSON and a missing query fail.
func DecodeRequest(body []byte) (Request, error) {
	if !json.Valid(body) {
		return Request{}, apierr.Validation(apierr.CodeInvalidJSON, errInvalidJSON)
	}

	var w wireRequest
	if isObject(body) {
		if err := json.Unmarshal(body, &w); err != nil {
			return Request{}, apierr.Validation(apierr.CodeInvalidJSON, err)
		}
	}

	var query string
	if err := json.Unmarshal(w.Query, &query); err != nil || query == "" {
		return Request{}, apierr.Validation(apierr.CodeQueryRequired, errQueryRequired)
	}

	req := Request{
		Query: query,
		Mode:  looseString(w.Mode),
		Depth: looseString(w.Depth),
	}

	if isObject(w.Prompts) {
		var p wirePrompts
		if json.Unmarshal(w.Prompts, &p) == nil {
			req.System = looseString(p.System)
			req.Developer = looseString(p.Developer)
		}
	}

	if isObject(w.Config) {
		var c wireConfig
		if json.Unmarshal(w.Config, &c) == nil {
			req.Constraints = prompt.Constraints{
				TranslationOrder: looseList(c.TranslationOrder),
				XrefLimit:        looseNumber(c.XrefLimit),
				MaxQuoteWords:    looseNumber(c.MaxQuoteWords),
			}
		}
	}

	return req, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// looseString renders a JSON scalar as text. Falsy scalars (null, false, 0,
// "") and containers yield "".
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case 'f', 'n', '{', '[':
		return ""
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// looseList accepts only a JSON array; elements are stringified and blanks
// dropped.
func looseList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(looseString(it)); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// looseNumber accepts a JSON number or a numeric string. Anything else is 0,
// which the prompt builder treats as unset.
func looseNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	text := string(raw)
	if raw[0] == '"' {
		if json.Unmarshal(raw, &text) != nil {
			return 0
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return f
}
