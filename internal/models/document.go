package models

import (
	"encoding/json"
	"time"
)

// NewsletterDocument is the single root entity: every piece of guest-facing
// content lives in one JSON document stored as the sole row of the remote
// store and mirrored verbatim into the local cache.
type NewsletterDocument struct {
	Sections      []SectionInstance `json:"sections"`
	Footer        FooterData        `json:"footer"`
	Header        *HeaderData       `json:"header,omitempty"`
	WidgetEnabled bool              `json:"widgetEnabled"`
	WidgetCards   []WidgetCard      `json:"widgetCards,omitempty"`
	WidgetConfig  *WidgetConfig     `json:"widgetConfig,omitempty"`
}

type SocialLink struct {
	ID      string `json:"id"`
	IconURL string `json:"iconUrl"`
	URL     string `json:"url"`
}

type FooterData struct {
	ConnectLabel  string       `json:"connectLabel"`
	SocialLinks   []SocialLink `json:"socialLinks"`
	CopyrightText string       `json:"copyrightText"`
}

type HeaderData struct {
	LogoURL string `json:"logoUrl"`
	LinkURL string `json:"linkUrl"`
}

// WidgetConfig controls the floating promotional widget button.
type WidgetConfig struct {
	ButtonLabel   string `json:"buttonLabel"`
	ButtonIconURL string `json:"buttonIconUrl"`
	EnableBounce  bool   `json:"enableBounce"`
}

// WidgetCard is a time-boxed promotional entry. Expired cards stay in the
// document; presentation filters them out by the [StartTime, EndTime] window.
type WidgetCard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CtaURL      string    `json:"ctaUrl,omitempty"`
	CtaLabel    string    `json:"ctaLabel,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsActive    bool      `json:"isActive"`
}

// Clone returns a deep copy. The engine hands copies to readers so the
// authoritative document is never mutated outside Commit.
func (d NewsletterDocument) Clone() NewsletterDocument {
	var out NewsletterDocument
	b, err := json.Marshal(d)
	if err != nil {
		return d
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return d
	}
	return out
}
