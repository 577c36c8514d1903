// Package prompt assembles the schema-constrained instructions sent to the
// completion engine. It never parses or validates model output.
package prompt

import (
	"math"
	"strconv"
	"strings"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

const (
	DefaultDepth         = "deep"
	DefaultXrefLimit     = 5
	DefaultMaxQuoteWords = 120

	translationSeparator = " → "
)

// Schema is appended to every user message. The field names here define the
// wire names of guidance.Payload.
const Schema = `Return ONLY JSON matching this schema:
{
  "response": string,                // main answer body
  "explanation": string|null,        // optional deeper dive
  "scripture_pathway": [             // list of passages used
    { "ref": string, "quote": string|null, "why": string|null,
      "translation": "ESV"|"CSB"|"NIV"|"NKJV" }
  ],
  "next_steps": string[],            // practical actions
  "reflection_prayer": string|null,  // short prayer (optional)
  "follow_up_question": string|null, // one inviting next question
  "intent": string                   // server-detected or model-assigned
}
Do not include markdown fences or extra text—JSON only.`

// ModeRule is the response-shape instruction for one client mode.
type ModeRule struct {
	Mode        string
	Instruction string
}

// ModeRules is listed in the order it appears in the prompt.
var ModeRules = []ModeRule{
	{Mode: "/ask", Instruction: "≤120 words + one verse."},
	{Mode: "/study", Instruction: "context → meaning → application → prayer."},
	{Mode: "/pray", Instruction: "2–5 sentence Christ-centered prayer."},
	{Mode: "/plan", Instruction: "7-day plan with passages + prompts."},
	{Mode: "/debate", Instruction: "present biblical case, summarize opposing view fairly, respond charitably."},
	{Mode: "/share", Instruction: "4-slide caption (hook, scripture, insight, next step)."},
}

// Constraints are advisory: they are written into the prompt and not checked
// against the model's answer.
type Constraints struct {
	TranslationOrder []string
	XrefLimit        float64
	MaxQuoteWords    float64
}

type Input struct {
	Query       string
	Mode        string
	Depth       string
	System      string
	Developer   string
	Constraints Constraints
}

// Prompt is the three-part instruction set for one completion call.
type Prompt struct {
	System    string
	Developer string
	User      string
}

func Build(in Input) Prompt {
	mode := in.Mode
	if mode == "" {
		mode = "none"
	}
	depth := in.Depth
	if depth == "" {
		depth = DefaultDepth
	}

	user := strings.Join([]string{
		"Question: " + in.Query,
		"Mode: " + mode,
		"Depth: " + depth,
		constraintsBlock(in.Constraints),
		Schema,
	}, "\n")

	return Prompt{
		System:    in.System,
		Developer: in.Developer,
		User:      user,
	}
}

func constraintsBlock(c Constraints) string {
	var b strings.Builder
	b.WriteString("\n- Quote from ")
	b.WriteString(translationOrder(c.TranslationOrder))
	b.WriteString(". Keep direct quotes ≤ ")
	b.WriteString(formatNumber(c.MaxQuoteWords, DefaultMaxQuoteWords))
	b.WriteString(" words.\n- Use ≤ ")
	b.WriteString(formatNumber(c.XrefLimit, DefaultXrefLimit))
	b.WriteString(" cross-references unless the user requested /study.\n- Format per mode:\n")
	for _, r := range ModeRules {
		b.WriteString("  ")
		b.WriteString(r.Mode)
		b.WriteString(" → ")
		b.WriteString(r.Instruction)
		b.WriteString("\n")
	}
	return b.String()
}

func translationOrder(order []string) string {
	if len(order) == 0 {
		def := make([]string, len(guidance.DefaultTranslationOrder))
		for i, t := range guidance.DefaultTranslationOrder {
			def[i] = string(t)
		}
		return strings.Join(def, translationSeparator)
	}
	return strings.Join(order, translationSeparator)
}

// formatNumber renders v, or def when v is unset, not positive or not finite.
func formatNumber(v float64, def int) string {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.Itoa(def)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
