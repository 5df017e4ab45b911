// Package content holds the copy and static data shown on the page.
//
// The default site ships embedded as site.yaml; an external file with the
// same layout replaces it at startup and on hot reload.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid site content")

// Anchors are the section names nav entries may link to.
var Anchors = []string{"home", "services", "menu", "projects", "process", "stats", "safety", "contact"}

// Icons are the glyph names a service card may use.
var Icons = []string{"power", "lightbulb", "zap", "fan", "thermometer", "shield"}

// Site is the full page content.
type Site struct {
	Brand     string `yaml:"brand"`
	Company   string `yaml:"company"`
	Phone     string `yaml:"phone"`
	MapURL    string `yaml:"map_url"`
	Copyright string `yaml:"copyright"`

	Nav         []NavItem `yaml:"nav"`
	Hero        Hero      `yaml:"hero"`
	Services    []Service `yaml:"services"`
	ServiceMenu []string  `yaml:"service_menu"`
	Projects    []Project `yaml:"projects"`
	Process     []Step    `yaml:"process"`
	Stats       []Stat    `yaml:"stats"`
	Safety      Safety    `yaml:"safety"`
	Location    Location  `yaml:"location"`
	Footer      Footer    `yaml:"footer"`
}

// NavItem is one link in the full-screen menu.
type NavItem struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

// Hero is the first screen.
type Hero struct {
	Headline []string `yaml:"headline"`
	Blurb    string   `yaml:"blurb"`
	CTA      string   `yaml:"cta"`
	Marquee  []string `yaml:"marquee"`
}

// Service is one tilt card in the services grid.
type Service struct {
	Title string   `yaml:"title"`
	Icon  string   `yaml:"icon"`
	Items []string `yaml:"items"`
}

// Project is one card in the recent work section.
type Project struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
}

// Step is one stage of the "how we work" explainer.
type Step struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Stat is one tile in the stats section.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Safety is the reveal panel.
type Safety struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Location is the office map panel.
type Location struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
}

// Footer is the closing block.
type Footer struct {
	Tags []string `yaml:"tags"`
	CTA  string   `yaml:"cta"`
}

// Default returns the embedded site content.
func Default() *Site {
	s, err := Parse(defaultSite)
	if err != nil {
		panic(fmt.Sprintf("content: embedded site.yaml: %v", err))
	}
	return s
}

// Parse decodes and validates site content.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads site content from path. An empty path returns the embedded
// default.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// PhoneURL returns the telephone deep link for the booking buttons.
func (s *Site) PhoneURL() string {
	return "tel:" + s.Phone
}

// Validate reports every problem found in s, wrapped in ErrInvalid.
func (s *Site) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Brand) == "" {
		add("brand is empty")
	}
	if s.Phone == "" {
		add("phone is empty")
	}
	for _, r := range s.Phone {
		if (r < '0' || r > '9') && r != '+' {
			add("phone %q has a non-digit", s.Phone)
			break
		}
	}
	if u, err := url.Parse(s.MapURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		add("map_url %q is not an http(s) URL", s.MapURL)
	}

	for i, n := range s.Nav {
		if n.Label == "" {
			add("nav[%d] has no label", i)
		}
		if !slices.Contains(Anchors, n.Anchor) {
			add("nav[%d] links to unknown anchor %q", i, n.Anchor)
		}
	}

	if len(s.Hero.Headline) == 0 {
		add("hero headline is empty")
	}
	if s.Hero.CTA == "" {
		add("hero cta is empty")
	}

	if len(s.Services) == 0 {
		add("no services")
	}
	for i, svc := range s.Services {
		if svc.Title == "" {
			add("services[%d] has no title", i)
		}
		if !slices.Contains(Icons, svc.Icon) {
			add("services[%d] has unknown icon %q", i, svc.Icon)
		}
		if len(svc.Items) == 0 {
			add("services[%d] has no items", i)
		}
	}

	seen := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		if p.ID == "" || p.Title == "" {
			add("projects[%d] needs an id and a title", i)
			continue
		}
		if seen[p.ID] {
			add("projects[%d] repeats id %q", i, p.ID)
		}
		seen[p.ID] = true
	}

	for i, st := range s.Stats {
		if st.Value == "" || st.Label == "" {
			add("stats[%d] needs a value and a label", i)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}
