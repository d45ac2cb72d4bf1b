package models

import (
	"encoding/json"

	"github.com/guestlink/newsletter-backend/internal/errs"
)

// SectionType is the closed set of content block kinds.
type SectionType string

const (
	SectionHero             SectionType = "hero"
	SectionWelcome          SectionType = "welcome"
	SectionQuickLinks       SectionType = "quickLinks"
	SectionFeatureCards     SectionType = "featureCards"
	SectionEntertainmentKit SectionType = "entertainmentKit"
	SectionSportsSchedule   SectionType = "sportsSchedule"
	SectionCharity          SectionType = "charity"
)

// SectionTypes lists every supported type in a stable order.
var SectionTypes = []SectionType{
	SectionHero,
	SectionWelcome,
	SectionQuickLinks,
	SectionFeatureCards,
	SectionEntertainmentKit,
	SectionSportsSchedule,
	SectionCharity,
}

func (t SectionType) Valid() bool {
	switch t {
	case SectionHero, SectionWelcome, SectionQuickLinks, SectionFeatureCards,
		SectionEntertainmentKit, SectionSportsSchedule, SectionCharity:
		return true
	}
	return false
}

// SectionInstance is one positioned content block. Content stays raw JSON at
// the document level; the shape is owned by the declared type and decoded
// through DecodeSectionContent.
type SectionInstance struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// SectionContent is the tagged union over the per-type content shapes.
type SectionContent interface {
	sectionContent()
}

type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	BgImage  string `json:"bgImage"`
}

type WelcomeContent struct {
	Text string `json:"text"`
}

type QuickLink struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

type QuickLinksContent []QuickLink

type FeatureCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CtaURL      string `json:"ctaUrl"`
	CtaLabel    string `json:"ctaLabel,omitempty"`
}

type FeatureCardsContent []FeatureCard

type EntertainmentKitItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel"`
	IconURL  string `json:"iconUrl"`
	URL      string `json:"url"`
}

// EntertainmentKitContent is the current wire shape. A legacy document may
// store the item sequence directly as the section content; DecodeSectionContent
// accepts both and always returns this shape.
type EntertainmentKitContent struct {
	BannerImageURL string                 `json:"bannerImageUrl,omitempty"`
	Items          []EntertainmentKitItem `json:"items"`
}

type SportMatch struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Month    string `json:"month"`
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	League   string `json:"league"`
	Time     string `json:"time"`
	Location string `json:"location"`
	LogoA    string `json:"logoA"`
	LogoB    string `json:"logoB"`
}

type SportsScheduleContent []SportMatch

type CharityContent struct {
	Title          string `json:"title"`
	Heading        string `json:"heading"`
	HeadingLogoURL string `json:"headingLogoUrl,omitempty"`
	Description    string `json:"description"`
	Subtext        string `json:"subtext,omitempty"`
	ImageURL       string `json:"imageUrl"`
	CtaLabel       string `json:"ctaLabel,omitempty"`
	CtaURL         string `json:"ctaUrl,omitempty"`
	FooterText     string `json:"footerText,omitempty"`
}

func (HeroContent) sectionContent()             {}
func (WelcomeContent) sectionContent()          {}
func (QuickLinksContent) sectionContent()       {}
func (FeatureCardsContent) sectionContent()     {}
func (EntertainmentKitContent) sectionContent() {}
func (SportsScheduleContent) sectionContent()   {}
func (CharityContent) sectionContent()          {}

// DecodeSectionContent decodes raw section content into the typed variant for
// the declared type. Every SectionType has a branch; an unknown type or
// undecodable payload is a ValidationError the caller degrades on (render
// nothing, reject the edit) rather than a document-level failure.
func DecodeSectionContent(t SectionType, raw json.RawMessage) (SectionContent, error) {
	switch t {
	case SectionHero:
		var c HeroContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed hero content")
		}
		return c, nil
	case SectionWelcome:
		var c WelcomeContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed welcome content")
		}
		return c, nil
	case SectionQuickLinks:
		var c QuickLinksContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed quickLinks content")
		}
		return c, nil
	case SectionFeatureCards:
		var c FeatureCardsContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed featureCards content")
		}
		return c, nil
	case SectionEntertainmentKit:
		return decodeEntertainmentKit(raw)
	case SectionSportsSchedule:
		var c SportsScheduleContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed sportsSchedule content")
		}
		return c, nil
	case SectionCharity:
		var c CharityContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.NewValidationError("malformed charity content")
		}
		return c, nil
	}
	return nil, errs.NewValidationError("unknown section type: " + string(t))
}

// decodeEntertainmentKit normalizes both wire shapes at the decode boundary:
// the current {bannerImageUrl, items} object and the legacy bare item array.
func decodeEntertainmentKit(raw json.RawMessage) (SectionContent, error) {
	var c EntertainmentKitContent
	if err := json.Unmarshal(raw, &c); err == nil && c.Items != nil {
		return c, nil
	}
	var legacy []EntertainmentKitItem
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return EntertainmentKitContent{Items: legacy}, nil
	}
	// Object shape with no items key decodes to an empty kit rather than
	// failing the section.
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errs.NewValidationError("malformed entertainmentKit content")
	}
	if c.Items == nil {
		c.Items = []EntertainmentKitItem{}
	}
	return c, nil
}

// EncodeSectionContent marshals a typed variant back to raw content. The
// entertainmentKit variant always re-encodes in the object shape, so any
// mutation of a legacy document migrates it forward.
func EncodeSectionContent(c SectionContent) (json.RawMessage, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errs.NewValidationError("unencodable section content")
	}
	return json.RawMessage(b), nil
}
