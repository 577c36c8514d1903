package content

import (
	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/pkg/pointers"
)

// Builder assembles static payloads. It performs lookups only; every word of
// content lives in the table or, for crisis, in crisisBlock.
type Builder struct {
	table       *Table
	recommender *Recommender
}

func NewBuilder(t *Table) *Builder {
	return &Builder{table: t, recommender: NewRecommender(t)}
}

func (b *Builder) Build(intent guidance.Intent) *guidance.Payload {
	if intent == guidance.IntentCrisis {
		p := fromBlock(crisisBlock, intent)
		p.Recommendation = b.recommender.Recommend(intent).Recommendation()
		p.Escalation = guidance.CrisisEscalation()
		p.Disclaimer = guidance.DefaultDisclaimer
		return p
	}

	block, ok := b.table.Block(intent)
	if !ok {
		intent = guidance.IntentGeneral
		block, _ = b.table.Block(intent)
	}
	p := fromBlock(block, intent)
	p.Recommendation = b.recommender.Recommend(intent).Recommendation()
	p.Escalation = guidance.NoEscalation()
	p.Disclaimer = guidance.DefaultDisclaimer
	return p
}

func fromBlock(block Block, intent guidance.Intent) *guidance.Payload {
	pathway := make([]guidance.ScriptureEntry, len(block.ScripturePathway))
	copy(pathway, block.ScripturePathway)
	steps := make([]string, len(block.NextSteps))
	copy(steps, block.NextSteps)

	return &guidance.Payload{
		Response:         block.Response,
		Explanation:      pointers.NonEmpty(block.Explanation),
		ScripturePathway: pathway,
		NextSteps:        steps,
		ReflectionPrayer: pointers.NonEmpty(block.ReflectionPrayer),
		FollowUpQuestion: pointers.NonEmpty(block.FollowUpQuestion),
		Intent:           intent.String(),
	}
}
