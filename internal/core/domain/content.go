package domain

import (
	"encoding/json"
	"fmt"
)

// ProjectCategory groups portfolio projects
type ProjectCategory string

const (
	CategoryAnalytics ProjectCategory = "Analytics"
	CategoryAIOps     ProjectCategory = "AI Ops"
)

// IsValid returns true if this is a known category
func (c ProjectCategory) IsValid() bool {
	switch c {
	case CategoryAnalytics, CategoryAIOps:
		return true
	default:
		return false
	}
}

// ContentDocument is the single aggregate holding all site content
type ContentDocument struct {
	Home       HomeContent    `json:"home" yaml:"home"`
	About      AboutContent   `json:"about" yaml:"about"`
	Services   []ServiceItem  `json:"services" yaml:"services"`
	Portfolio  []ProjectItem  `json:"portfolio" yaml:"portfolio"`
	Blog       []BlogPost     `json:"blog" yaml:"blog"`
	Contact    ContactContent `json:"contact" yaml:"contact"`
	Footer     FooterContent  `json:"footer" yaml:"footer"`
	Navigation []NavItem      `json:"navigation" yaml:"navigation"`
	SEO        SEOData        `json:"seo" yaml:"seo"` // site-wide default
}

// HomeContent is the landing page
type HomeContent struct {
	Hero                HeroContent          `json:"hero" yaml:"hero"`
	Intro               IntroContent         `json:"intro" yaml:"intro"`
	Skills              []SkillItem          `json:"skills" yaml:"skills"`
	PortfolioHighlights []PortfolioHighlight `json:"portfolioHighlights" yaml:"portfolioHighlights"`
}

type HeroContent struct {
	Headline               string `json:"headline" yaml:"headline"`
	Subheadline            string `json:"subheadline" yaml:"subheadline"`
	CTAButtonText          string `json:"ctaButtonText" yaml:"ctaButtonText"`
	CTAButtonLink          string `json:"ctaButtonLink" yaml:"ctaButtonLink"`
	CTASecondaryButtonText string `json:"ctaSecondaryButtonText" yaml:"ctaSecondaryButtonText"`
	CTASecondaryButtonLink string `json:"ctaSecondaryButtonLink" yaml:"ctaSecondaryButtonLink"`
	Image                  string `json:"image" yaml:"image"`
}

type IntroContent struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type SkillItem struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// PortfolioHighlight points at a project by ID
type PortfolioHighlight struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Link        string `json:"link" yaml:"link"`
}

// AboutContent is the about page. Text fields may carry inline markup.
type AboutContent struct {
	Summary             string      `json:"summary" yaml:"summary"`
	AnalyticsExpertise  string      `json:"analyticsExpertise" yaml:"analyticsExpertise"`
	AIOpsMindset        string      `json:"aiOpsMindset" yaml:"aiOpsMindset"`
	PhilosophyTitle     string      `json:"philosophyTitle" yaml:"philosophyTitle"`
	PhilosophyAnalytics string      `json:"philosophyAnalytics" yaml:"philosophyAnalytics"`
	PhilosophyAIOps     string      `json:"philosophyAIOps" yaml:"philosophyAIOps"`
	PhilosophyCombined  string      `json:"philosophyCombined" yaml:"philosophyCombined"`
	ToolsSkills         ToolsSkills `json:"toolsSkills" yaml:"toolsSkills"`
}

type ToolsSkills struct {
	Analytics    []string `json:"analytics" yaml:"analytics"`
	AIOperations []string `json:"aiOperations" yaml:"aiOperations"`
}

// ServiceItem is one offered service. ID is unique within the list.
type ServiceItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ProjectItem is one portfolio case study. Slug is unique within the list.
type ProjectItem struct {
	ID       string          `json:"id" yaml:"id"`
	Slug     string          `json:"slug" yaml:"slug"`
	Title    string          `json:"title" yaml:"title"`
	Category ProjectCategory `json:"category" yaml:"category"`
	Problem  string          `json:"problem" yaml:"problem"`
	Approach string          `json:"approach" yaml:"approach"`
	Tools    []string        `json:"tools" yaml:"tools"`
	Outcome  string          `json:"outcome" yaml:"outcome"`
	Image    string          `json:"image" yaml:"image"`
}

type ContactContent struct {
	IntroText              string `json:"introText" yaml:"introText"`
	Email                  string `json:"email" yaml:"email"`
	LinkedIn               string `json:"linkedin" yaml:"linkedin"`
	GitHub                 string `json:"github,omitempty" yaml:"github,omitempty"`
	Medium                 string `json:"medium,omitempty" yaml:"medium,omitempty"`
	ContactFormPlaceholder string `json:"contactFormPlaceholder" yaml:"contactFormPlaceholder"`
	ContactFormButtonText  string `json:"contactFormButtonText" yaml:"contactFormButtonText"`
}

type FooterContent struct {
	Copyright          string `json:"copyright" yaml:"copyright"`
	QuickLinksTitle    string `json:"quickLinksTitle" yaml:"quickLinksTitle"`
	PrivacyPolicyText  string `json:"privacyPolicyText" yaml:"privacyPolicyText"`
	PrivacyPolicyLink  string `json:"privacyPolicyLink" yaml:"privacyPolicyLink"`
	TermsOfServiceText string `json:"termsOfServiceText" yaml:"termsOfServiceText"`
	TermsOfServiceLink string `json:"termsOfServiceLink" yaml:"termsOfServiceLink"`
}

// NavItem is one navigation entry. ID is unique within the list.
type NavItem struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	AdminOnly bool   `json:"adminOnly,omitempty" yaml:"adminOnly,omitempty"`
}

// Clone returns a deep copy of the document
func (d *ContentDocument) Clone() *ContentDocument {
	if d == nil {
		return nil
	}

	c := *d
	c.Home.Skills = cloneSlice(d.Home.Skills)
	c.Home.PortfolioHighlights = cloneSlice(d.Home.PortfolioHighlights)
	c.About.ToolsSkills.Analytics = cloneSlice(d.About.ToolsSkills.Analytics)
	c.About.ToolsSkills.AIOperations = cloneSlice(d.About.ToolsSkills.AIOperations)
	c.Services = cloneSlice(d.Services)
	c.Navigation = cloneSlice(d.Navigation)

	if d.Portfolio != nil {
		c.Portfolio = make([]ProjectItem, len(d.Portfolio))
		for i, p := range d.Portfolio {
			p.Tools = cloneSlice(p.Tools)
			c.Portfolio[i] = p
		}
	}

	if d.Blog != nil {
		c.Blog = make([]BlogPost, len(d.Blog))
		for i, p := range d.Blog {
			c.Blog[i] = p.Clone()
		}
	}

	return &c
}

// cloneSlice copies a slice of value types, preserving nil
func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	copy(out, s)
	return out
}

// DecodeContentDocument parses a stored document. A document missing any
// top-level section is rejected so the caller can substitute the full default
// instead of filling fields one by one.
func DecodeContentDocument(data []byte) (*ContentDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	for _, name := range Sections {
		if _, ok := raw[string(name)]; !ok {
			return nil, fmt.Errorf("content missing section %q", name)
		}
	}

	var doc ContentDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	return &doc, nil
}
