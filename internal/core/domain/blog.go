package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the ISO-8601 calendar date format used for post dates
const DateLayout = "2006-01-02"

// BlogPost is a single article. Slug is unique across the blog section.
type BlogPost struct {
	ID        string   `json:"id" yaml:"id"`
	Slug      string   `json:"slug" yaml:"slug"`
	Title     string   `json:"title" yaml:"title"`
	Author    string   `json:"author" yaml:"author"`
	Date      string   `json:"date" yaml:"date"`
	Category  string   `json:"category" yaml:"category"`
	Tags      Tags     `json:"tags" yaml:"tags"`
	Excerpt   string   `json:"excerpt" yaml:"excerpt"`
	Content   string   `json:"content" yaml:"content"` // HTML, untrusted
	Image     string   `json:"image" yaml:"image"`
	Published bool     `json:"published" yaml:"published"`
	SEO       *SEOData `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// Clone returns a deep copy of the post
func (p BlogPost) Clone() BlogPost {
	c := p
	c.Tags = cloneSlice(p.Tags)
	if p.SEO != nil {
		seo := *p.SEO
		c.SEO = &seo
	}
	return c
}

// Tags is a list of post tags. It decodes from either a JSON list or a
// single comma-separated string, and always holds trimmed, non-empty entries.
type Tags []string

// ParseTags splits a comma-separated tag string
func ParseTags(s string) Tags {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims every tag and drops empty ones
func NormalizeTags(tags []string) Tags {
	out := make(Tags, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// UnmarshalJSON accepts "a, b" as well as ["a", "b"]
func (t *Tags) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Tags{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTags(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or a list of strings: %w", err)
	}
	*t = NormalizeTags(list)
	return nil
}

// MarshalJSON always emits a list, never null
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// Slugify turns a title into a lowercase, hyphen-separated, URL-safe slug.
// Accents are folded ("Déjà Vu" -> "deja-vu"); anything else that is not
// a letter or digit becomes a separator.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
