package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestApplySection(t *testing.T) {
	doc := DefaultContent()
	services := []ServiceItem{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}

	next := Apply(doc, ServicesSection{Value: services})

	if !reflect.DeepEqual(next.Services, services) {
		t.Errorf("expected services replaced, got %+v", next.Services)
	}
	if len(doc.Services) != 6 {
		t.Error("Apply must not modify the input document")
	}
	if !reflect.DeepEqual(next.Portfolio, doc.Portfolio) {
		t.Error("other sections should be untouched")
	}

	services[0].Title = "mutated"
	if next.Services[0].Title != "A" {
		t.Error("result should not alias the update value")
	}
}

func TestApplyEverySection(t *testing.T) {
	doc := DefaultContent()
	updates := []SectionUpdate{
		HomeSection{HomeContent{Hero: HeroContent{Headline: "H"}}},
		AboutSection{AboutContent{Summary: "S"}},
		ServicesSection{[]ServiceItem{{ID: "1"}}},
		PortfolioSection{[]ProjectItem{{Slug: "p"}}},
		BlogSection{[]BlogPost{{Slug: "b"}}},
		ContactSection{ContactContent{Email: "e"}},
		FooterSection{FooterContent{Copyright: "c"}},
		NavigationSection{[]NavItem{{ID: "n"}}},
		SEOSection{SEOData{Title: "t"}},
	}
	if len(updates) != len(Sections) {
		t.Fatalf("expected one variant per section")
	}

	for i, u := range updates {
		if u.Section() != Sections[i] {
			t.Errorf("variant %d reports %s, want %s", i, u.Section(), Sections[i])
		}
		next := Apply(doc, u)
		got, err := next.Section(u.Section())
		if err != nil {
			t.Fatalf("Section(%s): %v", u.Section(), err)
		}
		if !reflect.DeepEqual(SectionValue(got), SectionValue(u)) {
			t.Errorf("%s: expected %+v, got %+v", u.Section(), SectionValue(u), SectionValue(got))
		}
	}
}

func TestDecodeSectionUpdate(t *testing.T) {
	tests := []struct {
		name    string
		section SectionName
		body    string
		wantErr error
	}{
		{"services", SectionServices, `[{"id":"1","title":"T","description":"D"}]`, nil},
		{"seo", SectionSEO, `{"title":"Site"}`, nil},
		{"navigation", SectionNavigation, `[{"id":"home","name":"Home","path":"/"}]`, nil},
		{"unknown", "sidebar", `{}`, ErrUnknownSection},
		{"wrong shape", SectionServices, `{"id":"1"}`, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := DecodeSectionUpdate(tt.section, []byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Section() != tt.section {
				t.Errorf("expected section %s, got %s", tt.section, u.Section())
			}
		})
	}
}

func TestSectionUnknown(t *testing.T) {
	if _, err := DefaultContent().Section("sidebar"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}
