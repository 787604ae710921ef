package domain

import "testing"

func TestResolvePostSEO(t *testing.T) {
	site := SEOData{
		Title:              "Site",
		Description:        "Site description",
		Keywords:           "site, keywords",
		OGTitle:            "Site OG",
		OGDescription:      "Site OG description",
		OGImage:            "site-og.png",
		TwitterCard:        "summary_large_image",
		TwitterTitle:       "Site Twitter",
		TwitterDescription: "Site Twitter description",
		TwitterImage:       "site-twitter.png",
	}

	t.Run("override wins, derived beats site", func(t *testing.T) {
		got := ResolvePostSEO(&SEOData{Title: "Override"}, "T", "E", "I", site)

		if got.Title != "Override" {
			t.Errorf("expected title Override, got %q", got.Title)
		}
		if got.OGTitle != "T" {
			t.Errorf("expected ogTitle T, got %q", got.OGTitle)
		}
		if got.Description != "E" || got.OGDescription != "E" || got.TwitterDescription != "E" {
			t.Errorf("expected descriptions derived from excerpt, got %+v", got)
		}
		if got.OGImage != "I" || got.TwitterImage != "I" {
			t.Errorf("expected images derived from post image, got %+v", got)
		}
		if got.Keywords != site.Keywords {
			t.Errorf("expected site keywords, got %q", got.Keywords)
		}
		if got.TwitterCard != site.TwitterCard {
			t.Errorf("expected site twitter card, got %q", got.TwitterCard)
		}
	})

	t.Run("site fills what the post lacks", func(t *testing.T) {
		got := ResolvePostSEO(nil, "T", "", "", site)

		if got.Title != "T" {
			t.Errorf("expected title T, got %q", got.Title)
		}
		if got.Description != site.Description {
			t.Errorf("expected site description, got %q", got.Description)
		}
		if got.OGImage != site.OGImage {
			t.Errorf("expected site og image, got %q", got.OGImage)
		}
	})

	t.Run("whitespace override is empty", func(t *testing.T) {
		got := ResolvePostSEO(&SEOData{Title: "   "}, "T", "E", "I", site)
		if got.Title != "T" {
			t.Errorf("expected title T, got %q", got.Title)
		}
	})
}

func TestMetaTags(t *testing.T) {
	seo := SEOData{Title: "Title", OGTitle: "OG", TwitterCard: "summary"}
	head := MetaTags(seo, "https://example.com/blog/post")

	if head.Title != "Title" {
		t.Errorf("expected title Title, got %q", head.Title)
	}

	want := []string{
		"description", "keywords", "og:title", "og:description", "og:image", "og:url", "og:type",
		"twitter:card", "twitter:title", "twitter:description", "twitter:image",
	}
	if len(head.Meta) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(head.Meta))
	}
	for i, tag := range head.Meta {
		key := tag.Name
		if key == "" {
			key = tag.Property
		}
		if key != want[i] {
			t.Errorf("tag %d: expected %s, got %s", i, want[i], key)
		}
	}

	if head.Meta[5].Content != "https://example.com/blog/post" {
		t.Errorf("expected og:url to be the page URL, got %q", head.Meta[5].Content)
	}
	if head.Meta[6].Content != DefaultOGType {
		t.Errorf("expected og:type %s, got %q", DefaultOGType, head.Meta[6].Content)
	}
}
