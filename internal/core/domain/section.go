package domain

import (
	"encoding/json"
	"fmt"
)

// SectionName is the JSON name of a top-level document field
type SectionName string

const (
	SectionHome       SectionName = "home"
	SectionAbout      SectionName = "about"
	SectionServices   SectionName = "services"
	SectionPortfolio  SectionName = "portfolio"
	SectionBlog       SectionName = "blog"
	SectionContact    SectionName = "contact"
	SectionFooter     SectionName = "footer"
	SectionNavigation SectionName = "navigation"
	SectionSEO        SectionName = "seo"
)

// Sections lists every top-level field in document order
var Sections = []SectionName{
	SectionHome, SectionAbout, SectionServices, SectionPortfolio, SectionBlog,
	SectionContact, SectionFooter, SectionNavigation, SectionSEO,
}

// SectionUpdate replaces one whole top-level field of the document.
// The set of implementations is closed; see the variants below.
type SectionUpdate interface {
	Section() SectionName
	apply(doc *ContentDocument)
}

type HomeSection struct{ Value HomeContent }
type AboutSection struct{ Value AboutContent }
type ServicesSection struct{ Value []ServiceItem }
type PortfolioSection struct{ Value []ProjectItem }
type BlogSection struct{ Value []BlogPost }
type ContactSection struct{ Value ContactContent }
type FooterSection struct{ Value FooterContent }
type NavigationSection struct{ Value []NavItem }
type SEOSection struct{ Value SEOData }

func (HomeSection) Section() SectionName       { return SectionHome }
func (AboutSection) Section() SectionName      { return SectionAbout }
func (ServicesSection) Section() SectionName   { return SectionServices }
func (PortfolioSection) Section() SectionName  { return SectionPortfolio }
func (BlogSection) Section() SectionName       { return SectionBlog }
func (ContactSection) Section() SectionName    { return SectionContact }
func (FooterSection) Section() SectionName     { return SectionFooter }
func (NavigationSection) Section() SectionName { return SectionNavigation }
func (SEOSection) Section() SectionName        { return SectionSEO }

func (u HomeSection) apply(d *ContentDocument)       { d.Home = u.Value }
func (u AboutSection) apply(d *ContentDocument)      { d.About = u.Value }
func (u ServicesSection) apply(d *ContentDocument)   { d.Services = u.Value }
func (u PortfolioSection) apply(d *ContentDocument)  { d.Portfolio = u.Value }
func (u BlogSection) apply(d *ContentDocument)       { d.Blog = u.Value }
func (u ContactSection) apply(d *ContentDocument)    { d.Contact = u.Value }
func (u FooterSection) apply(d *ContentDocument)     { d.Footer = u.Value }
func (u NavigationSection) apply(d *ContentDocument) { d.Navigation = u.Value }
func (u SEOSection) apply(d *ContentDocument)        { d.SEO = u.Value }

// Apply returns a deep copy of doc with one section replaced. Neither doc
// nor the update's value is shared with the result.
func Apply(doc *ContentDocument, u SectionUpdate) *ContentDocument {
	next := *doc
	u.apply(&next)
	return next.Clone()
}

// Section returns the current value of one section as a SectionUpdate
func (d *ContentDocument) Section(name SectionName) (SectionUpdate, error) {
	c := d.Clone()
	switch name {
	case SectionHome:
		return HomeSection{c.Home}, nil
	case SectionAbout:
		return AboutSection{c.About}, nil
	case SectionServices:
		return ServicesSection{c.Services}, nil
	case SectionPortfolio:
		return PortfolioSection{c.Portfolio}, nil
	case SectionBlog:
		return BlogSection{c.Blog}, nil
	case SectionContact:
		return ContactSection{c.Contact}, nil
	case SectionFooter:
		return FooterSection{c.Footer}, nil
	case SectionNavigation:
		return NavigationSection{c.Navigation}, nil
	case SectionSEO:
		return SEOSection{c.SEO}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSection)
	}
}

// SectionValue unwraps the payload of a section update for serialisation
func SectionValue(u SectionUpdate) any {
	switch v := u.(type) {
	case HomeSection:
		return v.Value
	case AboutSection:
		return v.Value
	case ServicesSection:
		return v.Value
	case PortfolioSection:
		return v.Value
	case BlogSection:
		return v.Value
	case ContactSection:
		return v.Value
	case FooterSection:
		return v.Value
	case NavigationSection:
		return v.Value
	case SEOSection:
		return v.Value
	default:
		return nil
	}
}

// DecodeSectionUpdate builds the update for a named section from its JSON body.
// The shape is not validated beyond what decoding requires.
func DecodeSectionUpdate(name SectionName, data []byte) (SectionUpdate, error) {
	var (
		u   SectionUpdate
		err error
	)
	switch name {
	case SectionHome:
		var v HomeContent
		err = json.Unmarshal(data, &v)
		u = HomeSection{v}
	case SectionAbout:
		var v AboutContent
		err = json.Unmarshal(data, &v)
		u = AboutSection{v}
	case SectionServices:
		var v []ServiceItem
		err = json.Unmarshal(data, &v)
		u = ServicesSection{v}
	case SectionPortfolio:
		var v []ProjectItem
		err = json.Unmarshal(data, &v)
		u = PortfolioSection{v}
	case SectionBlog:
		var v []BlogPost
		err = json.Unmarshal(data, &v)
		u = BlogSection{v}
	case SectionContact:
		var v ContactContent
		err = json.Unmarshal(data, &v)
		u = ContactSection{v}
	case SectionFooter:
		var v FooterContent
		err = json.Unmarshal(data, &v)
		u = FooterSection{v}
	case SectionNavigation:
		var v []NavItem
		err = json.Unmarshal(data, &v)
		u = NavigationSection{v}
	case SectionSEO:
		var v SEOData
		err = json.Unmarshal(data, &v)
		u = SEOSection{v}
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSection)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", name, ErrInvalidInput, err)
	}
	return u, nil
}
