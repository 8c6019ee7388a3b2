package app

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// catalogEntry is one subject block in the prompts file
type catalogEntry struct {
	Subject string   `yaml:"subject"`
	Prompts []string `yaml:"prompts"`
}

// PromptCatalog is the read-only subject-to-prompts mapping, loaded once at
// startup. Subjects keep the file's order.
type PromptCatalog struct {
	subjects []string
	prompts  map[string][]string
}

// LoadCatalog parses the embedded prompt catalog
func LoadCatalog() (*PromptCatalog, error) {
	return ParseCatalog(promptsYAML)
}

// ParseCatalog builds a catalog from YAML data
func ParseCatalog(data []byte) (*PromptCatalog, error) {
	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("prompt catalog is empty")
	}

	c := &PromptCatalog{
		subjects: make([]string, 0, len(entries)),
		prompts:  make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		if e.Subject == "" {
			return nil, fmt.Errorf("prompt catalog entry with empty subject")
		}
		if _, dup := c.prompts[e.Subject]; dup {
			return nil, fmt.Errorf("duplicate subject %q in prompt catalog", e.Subject)
		}
		c.subjects = append(c.subjects, e.Subject)
		c.prompts[e.Subject] = e.Prompts
	}
	return c, nil
}

// Subjects returns the full subject list in catalog order
func (c *PromptCatalog) Subjects() []string {
	return c.subjects
}

// Has reports whether the subject is part of the catalog
func (c *PromptCatalog) Has(subject string) bool {
	_, ok := c.prompts[subject]
	return ok
}

// Prompts returns the prompt list for a subject
func (c *PromptCatalog) Prompts(subject string) []string {
	return c.prompts[subject]
}

// RandomSubject picks a uniformly random subject
func (c *PromptCatalog) RandomSubject(rng *rand.Rand) string {
	return c.subjects[rng.Intn(len(c.subjects))]
}
