// Package sanitize provides an allow-list HTML sanitizer for stored content.
package sanitize

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HTMLSanitizer = (*Policy)(nil)

// droppedSelectors are removed together with everything inside them
const droppedSelectors = "script, style, iframe, object, embed, form, input, button, textarea, select, noscript, template, svg, math, link, meta, base"

// Policy keeps allow-listed elements and attributes. Other elements are
// unwrapped so their text survives; dangerous elements are dropped whole.
type Policy struct {
	elements   map[string]bool
	attributes map[string]map[string]bool
	urlAttrs   map[string]bool
	schemes    map[string]bool
}

// NewPolicy returns the policy used for blog posts and about-page text
func NewPolicy() *Policy {
	p := &Policy{
		elements:   make(map[string]bool),
		attributes: make(map[string]map[string]bool),
		urlAttrs:   map[string]bool{"href": true, "src": true},
		schemes:    map[string]bool{"": true, "http": true, "https": true, "mailto": true, "tel": true},
	}

	p.allow("", "class", "title")
	for _, tag := range []string{
		"p", "br", "hr", "div", "span",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "u", "s", "sub", "sup", "mark", "small",
		"blockquote", "code", "pre",
		"ul", "ol", "li", "dl", "dt", "dd",
		"figure", "figcaption",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
	} {
		p.allow(tag)
	}
	p.allow("a", "href", "target", "rel")
	p.allow("img", "src", "alt", "width", "height", "loading")
	p.allow("th", "colspan", "rowspan", "scope")
	p.allow("td", "colspan", "rowspan")
	p.allow("ol", "start")

	return p
}

// allow registers an element with its extra attributes.
// An empty tag registers attributes allowed on every element.
func (p *Policy) allow(tag string, attrs ...string) {
	if tag != "" {
		p.elements[tag] = true
	}
	set, ok := p.attributes[tag]
	if !ok {
		set = make(map[string]bool)
		p.attributes[tag] = set
	}
	for _, a := range attrs {
		set[a] = true
	}
}

// Sanitize returns input with everything outside the policy removed
func (p *Policy) Sanitize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return html.EscapeString(input)
	}

	body := doc.Find("body").First()
	body.Find(droppedSelectors).Remove()

	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if !p.elements[node.Data] {
			if s.Contents().Length() > 0 {
				s.Contents().Unwrap()
			} else {
				s.Remove()
			}
			return
		}
		node.Attr = p.filterAttrs(node.Data, node.Attr)
		if node.Data == "a" {
			secureLink(s)
		}
	})

	out, err := body.Html()
	if err != nil {
		return html.EscapeString(input)
	}
	return strings.TrimSpace(out)
}

func (p *Policy) filterAttrs(tag string, attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		name := strings.ToLower(a.Key)
		if a.Namespace != "" || !(p.attributes[""][name] || p.attributes[tag][name]) {
			continue
		}
		if p.urlAttrs[name] && !p.safeURL(a.Val) {
			continue
		}
		kept = append(kept, html.Attribute{Key: name, Val: a.Val})
	}
	return kept
}

func (p *Policy) safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return p.schemes[strings.ToLower(u.Scheme)]
}

// secureLink stops a new tab from reaching back into the opener
func secureLink(s *goquery.Selection) {
	if target, ok := s.Attr("target"); ok && target == "_blank" {
		s.SetAttr("rel", "noopener noreferrer")
	}
}
