package backport

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
)

// RenameRule rewrites a target filename into an alternate donor filename.
// Only the first rule whose pattern matches the target is applied.
type RenameRule struct {
	Pattern *regexp.Regexp
	Replace string
}

// GlyphRule requests a set of characters for every target filename its
// pattern matches. All matching rules contribute to the target's plan.
type GlyphRule struct {
	Pattern *regexp.Regexp
	Chars   string
}

type Config struct {
	Revisions []string     `json:"revisions"` // donor search order, first hit wins
	Renames   []RenameRule `json:"renames"`
	Glyphs    []GlyphRule  `json:"glyphs"`
}

// DefaultConfig encodes the Tamzen build rules: the typographic quotes
// dropped after Tamsyn v1.6 are wanted back in every size, and the retired
// 7x14 and 8x16 sizes borrow from their nearest surviving neighbors.
func DefaultConfig() *Config {
	return &Config{
		Revisions: []string{"v1.6", "v1.9"},
		Renames: []RenameRule{
			{Pattern: regexp.MustCompile(`7x14`), Replace: "7x13"},
			{Pattern: regexp.MustCompile(`8x16`), Replace: "8x15"},
		},
		Glyphs: []GlyphRule{
			{Pattern: regexp.MustCompile(`.`), Chars: "‘’“”"},
		},
	}
}

// Plan is the per-target work order: donor filenames in try order and the
// characters the target must end up with, ascending and deduplicated.
type Plan struct {
	Files []string
	Chars []rune
}

func (c *Config) Plan(file string) Plan {
	return Plan{
		Files: c.variants(file),
		Chars: c.required(file),
	}
}

func (c *Config) variants(file string) []string {
	files := []string{file}
	for _, r := range c.Renames {
		if !r.Pattern.MatchString(file) {
			continue
		}
		if alt := r.Pattern.ReplaceAllString(file, r.Replace); alt != file {
			files = append(files, alt)
		}
		break
	}
	return files
}

func (c *Config) required(file string) []rune {
	set := make(map[rune]struct{})
	for _, g := range c.Glyphs {
		if !g.Pattern.MatchString(file) {
			continue
		}
		for _, ch := range g.Chars {
			set[ch] = struct{}{}
		}
	}

	chars := make([]rune, 0, len(set))
	for ch := range set {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// LoadConfig reads a JSON rule file in the shape written by Save.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`cannot read backport config: "%s"`, path)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf(`cannot load backport config "%s": %w`, path, err)
	}
	if len(c.Revisions) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRevisions)
	}
	return &c, nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backport config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backport config to %s: %w", path, err)
	}
	return nil
}

type renameRuleJSON struct {
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
}

type glyphRuleJSON struct {
	Pattern string `json:"pattern"`
	Chars   string `json:"chars"`
}

func (r RenameRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(renameRuleJSON{Pattern: r.Pattern.String(), Replace: r.Replace})
}

func (r *RenameRule) UnmarshalJSON(data []byte) error {
	var aux renameRuleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	pattern, err := regexp.Compile(aux.Pattern)
	if err != nil {
		return fmt.Errorf("bad rename pattern %q: %w", aux.Pattern, err)
	}
	r.Pattern = pattern
	r.Replace = aux.Replace
	return nil
}

func (g GlyphRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(glyphRuleJSON{Pattern: g.Pattern.String(), Chars: g.Chars})
}

func (g *GlyphRule) UnmarshalJSON(data []byte) error {
	var aux glyphRuleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	pattern, err := regexp.Compile(aux.Pattern)
	if err != nil {
		return fmt.Errorf("bad glyph pattern %q: %w", aux.Pattern, err)
	}
	g.Pattern = pattern
	g.Chars = aux.Chars
	return nil
}
