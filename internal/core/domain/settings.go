package domain

import "strings"

// SitemapPath is where the sitemap is served, relative to the site origin
const SitemapPath = "/sitemap.xml"

// CmsSettings holds site-wide CMS configuration edited from the SEO admin page
type CmsSettings struct {
	GoogleAnalyticsID string `json:"googleAnalyticsId" yaml:"googleAnalyticsId"`
	SitemapEnabled    bool   `json:"sitemapEnabled" yaml:"sitemapEnabled"`
	RobotsTxtContent  string `json:"robotsTxtContent" yaml:"robotsTxtContent"`
}

// DefaultCmsSettings returns the settings used when none are stored.
// origin is the public site origin, e.g. https://example.com
func DefaultCmsSettings(origin string) CmsSettings {
	return CmsSettings{
		GoogleAnalyticsID: "",
		SitemapEnabled:    true,
		RobotsTxtContent:  DefaultRobotsTxt(origin),
	}
}

// DefaultRobotsTxt allows every crawler and points it at the sitemap
func DefaultRobotsTxt(origin string) string {
	return "User-agent: *\nAllow: /\nSitemap: " + strings.TrimRight(origin, "/") + SitemapPath
}
