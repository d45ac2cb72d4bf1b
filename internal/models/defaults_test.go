package models

import (
	"testing"
	"time"
)

func TestDefaultDocumentIsStructurallyComplete(t *testing.T) {
	doc := DefaultDocument()

	if len(doc.Sections) != 7 {
		t.Fatalf("expected 7 seed sections, got %d", len(doc.Sections))
	}
	for i, sec := range doc.Sections {
		if !sec.Type.Valid() {
			t.Fatalf("section %d has invalid type %q", i, sec.Type)
		}
		if _, err := DecodeSectionContent(sec.Type, sec.Content); err != nil {
			t.Fatalf("seed section %s does not decode: %v", sec.ID, err)
		}
	}
	if doc.WidgetEnabled {
		t.Fatalf("widget should start disabled")
	}
	if doc.WidgetCards == nil {
		t.Fatalf("widget cards should be an empty slice, not nil")
	}
}

func TestRenderTimeFallbacks(t *testing.T) {
	doc := DefaultDocument()

	// header and widget config are absent in the default document; consumers
	// substitute the built-in fallbacks at render time
	if doc.Header != nil || doc.WidgetConfig != nil {
		t.Fatalf("default document should leave header and widget config absent")
	}

	header := DefaultHeader()
	if header.LogoURL == "" || header.LinkURL == "" {
		t.Fatalf("default header is incomplete: %+v", header)
	}

	cfg := DefaultWidgetConfig()
	if cfg.ButtonLabel == "" || cfg.ButtonIconURL == "" {
		t.Fatalf("default widget config is incomplete: %+v", cfg)
	}
}

func TestTemplateContentCoversEveryType(t *testing.T) {
	for _, st := range SectionTypes {
		c, err := TemplateContent(st)
		if err != nil {
			t.Fatalf("TemplateContent(%s) returned error: %v", st, err)
		}
		enc, err := EncodeSectionContent(c)
		if err != nil {
			t.Fatalf("template for %s does not encode: %v", st, err)
		}
		if _, err := DecodeSectionContent(st, enc); err != nil {
			t.Fatalf("template for %s does not round-trip: %v", st, err)
		}
	}
	if _, err := TemplateContent(SectionType("video")); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestNewWidgetCardWindow(t *testing.T) {
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	card := NewWidgetCard(now)

	if card.ID == "" {
		t.Fatalf("card needs an id")
	}
	if !card.IsActive {
		t.Fatalf("new card should start active")
	}
	if !card.StartTime.Equal(now) {
		t.Fatalf("start time should be now, got %v", card.StartTime)
	}
	if got := card.EndTime.Sub(card.StartTime); got != 30*24*time.Hour {
		t.Fatalf("expected a 30 day window, got %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := DefaultDocument()
	clone := doc.Clone()

	clone.Sections[0].ID = "mutated"
	clone.Footer.SocialLinks[0].URL = "mutated"

	if doc.Sections[0].ID == "mutated" {
		t.Fatalf("clone shares sections with the original")
	}
	if doc.Footer.SocialLinks[0].URL == "mutated" {
		t.Fatalf("clone shares footer links with the original")
	}
}
