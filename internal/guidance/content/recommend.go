package content

import "github.com/gloryco/thewell/internal/domain/guidance"

type Recommender struct {
	table *Table
}

func NewRecommender(t *Table) *Recommender {
	return &Recommender{table: t}
}

// Recommend returns the first catalog resource, in declaration order, that
// shares a topic with the intent. Unknown or unmatched intents get entry 0.
func (r *Recommender) Recommend(intent guidance.Intent) Resource {
	topics := r.table.TopicsFor(intent)
	for _, res := range r.table.catalog {
		if res.HasAnyTopic(topics) {
			return res
		}
	}
	return r.table.catalog[0]
}
