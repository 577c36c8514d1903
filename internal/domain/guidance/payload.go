package guidance

import (
	"strings"
)

type Translation string

const (
	TranslationESV  Translation = "ESV"
	TranslationCSB  Translation = "CSB"
	TranslationNIV  Translation = "NIV"
	TranslationNKJV Translation = "NKJV"
)

// DefaultTranslationOrder is the quote preference used when the caller sends none.
var DefaultTranslationOrder = []Translation{TranslationESV, TranslationCSB, TranslationNIV, TranslationNKJV}

func (t Translation) Valid() bool {
	switch t {
	case TranslationESV, TranslationCSB, TranslationNIV, TranslationNKJV:
		return true
	default:
		return false
	}
}

// ScriptureEntry is one cited passage. Ref is free text and never checked
// against a canon.
type ScriptureEntry struct {
	Ref         string      `json:"ref" yaml:"ref"`
	Quote       *string     `json:"quote" yaml:"quote"`
	Why         *string     `json:"why" yaml:"why"`
	Translation Translation `json:"translation" yaml:"translation"`
}

type Recommendation struct {
	ResourceID string `json:"resource_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
}

type EscalationType string

const (
	EscalationCrisis EscalationType = "crisis"
	EscalationNone   EscalationType = "none"
)

type Escalation struct {
	Type            EscalationType `json:"type"`
	Message         *string        `json:"message"`
	ContactRequired *bool          `json:"contact_required"`
}

const (
	// CrisisMessage is attached to every crisis-classified response.
	CrisisMessage = "if you are in immediate danger, contact local emergency services or dial 988 in the U.S."

	// DefaultDisclaimer is injected whenever a payload carries none.
	DefaultDisclaimer = "this is guidance, not the final word—scripture is. read in context and walk with your local church."
)

// Payload is the response contract shared by the static and LLM modes.
// "response" is the canonical name of the answer body in both.
type Payload struct {
	Response         string           `json:"response"`
	Explanation      *string          `json:"explanation"`
	ScripturePathway []ScriptureEntry `json:"scripture_pathway"`
	Recommendation   *Recommendation  `json:"recommendation"`
	NextSteps        []string         `json:"next_steps"`
	ReflectionPrayer *string          `json:"reflection_prayer"`
	FollowUpQuestion *string          `json:"follow_up_question"`
	Intent           string           `json:"intent"`
	Escalation       *Escalation      `json:"escalation"`
	Disclaimer       string           `json:"disclaimer"`
}

func CrisisEscalation() *Escalation {
	msg := CrisisMessage
	contact := true
	return &Escalation{Type: EscalationCrisis, Message: &msg, ContactRequired: &contact}
}

func NoEscalation() *Escalation {
	return &Escalation{Type: EscalationNone}
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (p *Payload) Normalize() {
	if p == nil {
		return
	}
	if p.ScripturePathway == nil {
		p.ScripturePathway = []ScriptureEntry{}
	}
	if p.NextSteps == nil {
		p.NextSteps = []string{}
	}
}

func (p *Payload) HasDisclaimer() bool {
	return p != nil && strings.TrimSpace(p.Disclaimer) != ""
}

func (p *Payload) IsCrisis() bool {
	return p != nil && p.Escalation != nil && p.Escalation.Type == EscalationCrisis
}
