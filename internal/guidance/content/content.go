// Package content holds the hand-curated static mode tables: the approved
// resource catalog, the intent to topic map, and one content block per intent.
package content

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

//go:embed content.yaml
var contentFS embed.FS

const embeddedName = "content.yaml"

type Resource struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Topics []string `yaml:"topics"`
}

func (r Resource) HasAnyTopic(topics []string) bool {
	for _, want := range topics {
		for _, have := range r.Topics {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

func (r Resource) Recommendation() *guidance.Recommendation {
	return &guidance.Recommendation{ResourceID: r.ID, Title: r.Title, Author: r.Author}
}

// Block is the authored body for one intent.
type Block struct {
	Response         string                    `yaml:"response"`
	Explanation      string                    `yaml:"explanation"`
	ScripturePathway []guidance.ScriptureEntry `yaml:"scripture_pathway"`
	NextSteps        []string                  `yaml:"next_steps"`
	ReflectionPrayer string                    `yaml:"reflection_prayer"`
	FollowUpQuestion string                    `yaml:"follow_up_question"`
}

type yamlContent struct {
	Content      string                       `yaml:"content"`
	Version      int                          `yaml:"version"`
	Catalog      []Resource                   `yaml:"catalog"`
	IntentTopics map[guidance.Intent][]string `yaml:"intent_topics"`
	Blocks       map[guidance.Intent]Block    `yaml:"blocks"`
}

// Table is read-only after Load returns and safe for concurrent use.
type Table struct {
	catalog      []Resource
	intentTopics map[guidance.Intent][]string
	blocks       map[guidance.Intent]Block
}

func (t *Table) Catalog() []Resource {
	out := make([]Resource, len(t.catalog))
	copy(out, t.catalog)
	return out
}

func (t *Table) TopicsFor(intent guidance.Intent) []string {
	return t.intentTopics[intent]
}

func (t *Table) Block(intent guidance.Intent) (Block, bool) {
	b, ok := t.blocks[intent]
	return b, ok
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default parses the embedded asset once.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		data, err := contentFS.ReadFile(embeddedName)
		if err != nil {
			defaultErr = err
			return
		}
		defaultTable, defaultErr = Load(data)
	})
	return defaultTable, defaultErr
}

// LoadFile reads an operator-supplied asset; an empty path means the embedded one.
func LoadFile(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return Load(data)
}

func Load(data []byte) (*Table, error) {
	var raw yamlContent
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := validate(&raw); err != nil {
		return nil, err
	}
	return &Table{
		catalog:      raw.Catalog,
		intentTopics: raw.IntentTopics,
		blocks:       raw.Blocks,
	}, nil
}

func validate(raw *yamlContent) error {
	if raw == nil {
		return errors.New("missing content")
	}
	if len(raw.Catalog) == 0 {
		return errors.New("content: catalog must have at least one resource")
	}
	seen := map[string]bool{}
	for i, r := range raw.Catalog {
		id := strings.TrimSpace(r.ID)
		if id == "" || strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Author) == "" {
			return fmt.Errorf("content: catalog[%d] needs id, title and author", i)
		}
		if seen[id] {
			return fmt.Errorf("content: duplicate catalog id %q", id)
		}
		seen[id] = true
	}

	for _, in := range guidance.StaticIntents {
		if len(raw.IntentTopics[in]) == 0 {
			return fmt.Errorf("content: intent %q has no topics", in)
		}
		// crisis content is fixed in code
		if in == guidance.IntentCrisis {
			continue
		}
		b, ok := raw.Blocks[in]
		if !ok {
			return fmt.Errorf("content: missing block for intent %q", in)
		}
		if err := validateBlock(in, b); err != nil {
			return err
		}
	}
	if _, ok := raw.Blocks[guidance.IntentCrisis]; ok {
		return errors.New("content: crisis block is not configurable")
	}
	return nil
}

func validateBlock(in guidance.Intent, b Block) error {
	if strings.TrimSpace(b.Response) == "" {
		return fmt.Errorf("content: block %q has no response", in)
	}
	if n := len(b.ScripturePathway); n < 2 || n > 3 {
		return fmt.Errorf("content: block %q needs 2-3 scripture entries, has %d", in, n)
	}
	for i, e := range b.ScripturePathway {
		if strings.TrimSpace(e.Ref) == "" {
			return fmt.Errorf("content: block %q scripture[%d] has no ref", in, i)
		}
		if !e.Translation.Valid() {
			return fmt.Errorf("content: block %q scripture[%d] has unsupported translation %q", in, i, e.Translation)
		}
	}
	if n := len(b.NextSteps); n < 1 || n > 2 {
		return fmt.Errorf("content: block %q needs 1-2 next steps, has %d", in, n)
	}
	return nil
}
