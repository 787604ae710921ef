package domain

import "strings"

// DefaultOGType is the Open Graph type emitted for every page
const DefaultOGType = "website"

// SEOData holds page metadata for search engines and social cards
type SEOData struct {
	Title              string `json:"title" yaml:"title"`
	Description        string `json:"description" yaml:"description"`
	Keywords           string `json:"keywords" yaml:"keywords"`
	OGTitle            string `json:"ogTitle" yaml:"ogTitle"`
	OGDescription      string `json:"ogDescription" yaml:"ogDescription"`
	OGImage            string `json:"ogImage" yaml:"ogImage"`
	TwitterCard        string `json:"twitterCard" yaml:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle" yaml:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription" yaml:"twitterDescription"`
	TwitterImage       string `json:"twitterImage" yaml:"twitterImage"`
}

// ResolvePostSEO computes the effective SEO record for a blog post.
// Each field takes the first non-empty value of: the post override,
// the value derived from the post's title/excerpt/image, the site default.
// Keywords and twitter card have no derived value.
func ResolvePostSEO(override *SEOData, title, excerpt, image string, site SEOData) SEOData {
	var o SEOData
	if override != nil {
		o = *override
	}

	return SEOData{
		Title:              firstNonEmpty(o.Title, title, site.Title),
		Description:        firstNonEmpty(o.Description, excerpt, site.Description),
		Keywords:           firstNonEmpty(o.Keywords, site.Keywords),
		OGTitle:            firstNonEmpty(o.OGTitle, title, site.OGTitle),
		OGDescription:      firstNonEmpty(o.OGDescription, excerpt, site.OGDescription),
		OGImage:            firstNonEmpty(o.OGImage, image, site.OGImage),
		TwitterCard:        firstNonEmpty(o.TwitterCard, site.TwitterCard),
		TwitterTitle:       firstNonEmpty(o.TwitterTitle, title, site.TwitterTitle),
		TwitterDescription: firstNonEmpty(o.TwitterDescription, excerpt, site.TwitterDescription),
		TwitterImage:       firstNonEmpty(o.TwitterImage, image, site.TwitterImage),
	}
}

// MetaTag is one <meta> element. Exactly one of Name or Property is set.
type MetaTag struct {
	Name     string `json:"name,omitempty"`
	Property string `json:"property,omitempty"`
	Content  string `json:"content"`
}

// PageHead is the emitted document title plus meta tags for a page
type PageHead struct {
	Title string    `json:"title"`
	Meta  []MetaTag `json:"meta"`
}

// MetaTags builds the head metadata for an effective SEO record.
// The tag names are a stable contract with crawlers; do not rename them.
func MetaTags(seo SEOData, pageURL string) PageHead {
	return PageHead{
		Title: seo.Title,
		Meta: []MetaTag{
			{Name: "description", Content: seo.Description},
			{Name: "keywords", Content: seo.Keywords},
			{Property: "og:title", Content: seo.OGTitle},
			{Property: "og:description", Content: seo.OGDescription},
			{Property: "og:image", Content: seo.OGImage},
			{Property: "og:url", Content: pageURL},
			{Property: "og:type", Content: DefaultOGType},
			{Name: "twitter:card", Content: seo.TwitterCard},
			{Name: "twitter:title", Content: seo.TwitterTitle},
			{Name: "twitter:description", Content: seo.TwitterDescription},
			{Name: "twitter:image", Content: seo.TwitterImage},
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
