// internal/templates/templates.go
package templates

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTables []byte

// Template is a text with {placeholder} slots and the phrase used for each
// slot when the caller leaves it empty.
type Template struct {
	Title     string            `yaml:"title"`
	Body      string            `yaml:"body"`
	ImageURL  string            `yaml:"image_url"`
	Fallbacks map[string]string `yaml:"fallbacks"`
}

type Platform struct {
	ID       string    `yaml:"id"`
	Label    string    `yaml:"label"`
	Hashtags []string  `yaml:"hashtags"`
	Caption  *Template `yaml:"caption"`
}

type Route struct {
	All   []string `yaml:"all"`
	Any   []string `yaml:"any"`
	Reply string   `yaml:"reply"`
}

type ContentLab struct {
	Poster  Template `yaml:"poster"`
	Caption Template `yaml:"caption"`
	Video   Template `yaml:"video"`
}

type Assistant struct {
	Greeting string  `yaml:"greeting"`
	Default  string  `yaml:"default"`
	Routes   []Route `yaml:"routes"`
}

// Set is the single source of every enum-keyed table the generators use.
type Set struct {
	DefaultPlatform string              `yaml:"default_platform"`
	DefaultIndustry string              `yaml:"default_industry"`
	Platforms       []Platform          `yaml:"platforms"`
	Industries      map[string][]string `yaml:"industries"`
	ContentLab      ContentLab          `yaml:"content_lab"`
	Assistant       Assistant           `yaml:"assistant"`

	byID map[string]*Platform
}

// Load parses and validates a YAML table document.
func Load(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.byID = make(map[string]*Platform, len(s.Platforms))
	for i := range s.Platforms {
		p := &s.Platforms[i]
		if p.ID == "" {
			return nil, fmt.Errorf("platform #%d has no id", i)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate platform %q", p.ID)
		}
		s.byID[p.ID] = p
	}
	def, ok := s.byID[s.DefaultPlatform]
	if !ok || def.Caption == nil {
		return nil, fmt.Errorf("default platform %q must exist and carry a caption template", s.DefaultPlatform)
	}
	if _, ok := s.Industries[s.DefaultIndustry]; !ok {
		return nil, fmt.Errorf("default industry %q has no hashtags", s.DefaultIndustry)
	}
	return &s, nil
}

var loadDefault = sync.OnceValues(func() (*Set, error) { return Load(defaultTables) })

// Default returns the tables compiled into the binary.
func Default() *Set {
	s, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return s
}

// Render replaces every {key} in text with data[key].
func Render(text string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Render fills t's body, substituting the fallback phrase for empty values.
// Whitespace is user content and is kept as entered.
func (t Template) Render(data map[string]string) string {
	return Render(t.Body, t.withFallbacks(data))
}

func (t Template) RenderTitle(data map[string]string) string {
	return Render(t.Title, t.withFallbacks(data))
}

func (t Template) withFallbacks(data map[string]string) map[string]string {
	merged := make(map[string]string, len(data)+len(t.Fallbacks))
	for k, v := range t.Fallbacks {
		merged[k] = v
	}
	for k, v := range data {
		if v == "" {
			if _, ok := t.Fallbacks[k]; ok {
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

// Caption returns the caption template for platform, or the default
// platform's when platform has none. The returned key names the template
// actually used.
func (s *Set) Caption(platform string) (string, Template) {
	if p, ok := s.byID[platform]; ok && p.Caption != nil {
		return p.ID, *p.Caption
	}
	return s.DefaultPlatform, *s.byID[s.DefaultPlatform].Caption
}

// IndustryTags returns the base hashtags of industry, falling back to the
// default industry.
func (s *Set) IndustryTags(industry string) []string {
	if tags, ok := s.Industries[strings.ToLower(industry)]; ok {
		return tags
	}
	return s.Industries[s.DefaultIndustry]
}

// PlatformTags returns the platform hashtags; unknown platforms have none.
func (s *Set) PlatformTags(platform string) []string {
	if p, ok := s.byID[platform]; ok {
		return p.Hashtags
	}
	return nil
}

// PlatformLabel returns the display label, defaulting to the default
// platform's label.
func (s *Set) PlatformLabel(platform string) string {
	if p, ok := s.byID[platform]; ok {
		return p.Label
	}
	return s.byID[s.DefaultPlatform].Label
}

func (s *Set) IsPlatform(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// PlatformIDs lists the publishable platforms in display order.
func (s *Set) PlatformIDs() []string {
	ids := make([]string, len(s.Platforms))
	for i, p := range s.Platforms {
		ids[i] = p.ID
	}
	return ids
}

// Reply routes a chat message to the first matching canned answer.
func (s *Set) Reply(input string) string {
	lower := strings.ToLower(input)
	for _, r := range s.Assistant.Routes {
		if r.matches(lower) {
			return r.Reply
		}
	}
	return s.Assistant.Default
}

func (r Route) matches(lower string) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, kw := range r.All {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, kw := range r.Any {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
