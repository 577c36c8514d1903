package parse

import (
	"errors"
	"strings"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

var (
	errNotObject    = errors.New("model output is not a JSON object")
	errTrailingData = errors.New("model output has trailing data after the JSON object")
)

// Augment sets the fields the server owns. Escalation follows the classifier
// verdict on the original query, never the model:
//   - crisis intent: escalation is overwritten with the fixed crisis block.
//   - otherwise: any escalation other than "none" is replaced with {type: none}.
//
// A blank disclaimer gets the default and nil collections become empty.
func Augment(p *guidance.Payload, intent guidance.Intent) *guidance.Payload {
	if p == nil {
		p = &guidance.Payload{Intent: intent.String()}
	}

	if intent == guidance.IntentCrisis {
		p.Escalation = guidance.CrisisEscalation()
	} else if p.Escalation == nil || p.Escalation.Type != guidance.EscalationNone {
		p.Escalation = guidance.NoEscalation()
	}

	if strings.TrimSpace(p.Disclaimer) == "" {
		p.Disclaimer = guidance.DefaultDisclaimer
	}
	p.Normalize()
	return p
}
