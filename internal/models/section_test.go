package models

import (
	"encoding/json"
	"testing"
)

func TestDecodeSectionContentHero(t *testing.T) {
	raw := json.RawMessage(`{"title":"WEEKLY","subtitle":"highlights","bgImage":"https://example.com/bg.jpg"}`)

	c, err := DecodeSectionContent(SectionHero, raw)
	if err != nil {
		t.Fatalf("DecodeSectionContent returned error: %v", err)
	}

	hero, ok := c.(HeroContent)
	if !ok {
		t.Fatalf("expected HeroContent, got %T", c)
	}
	if hero.Title != "WEEKLY" || hero.Subtitle != "highlights" {
		t.Fatalf("unexpected hero content: %+v", hero)
	}
}

func TestDecodeSectionContentUnknownType(t *testing.T) {
	_, err := DecodeSectionContent(SectionType("video"), json.RawMessage(`{}`))
	if err == nil {
		t.Fatalf("expected error for unknown section type")
	}
}

func TestDecodeSectionContentMalformed(t *testing.T) {
	_, err := DecodeSectionContent(SectionQuickLinks, json.RawMessage(`{"not":"an array"}`))
	if err == nil {
		t.Fatalf("expected error for quickLinks content that is not an array")
	}
}

func TestDecodeEntertainmentKitObjectShape(t *testing.T) {
	raw := json.RawMessage(`{"bannerImageUrl":"/banner.jpg","items":[{"id":"ek1","label":"KIDS CLUB"}]}`)

	c, err := DecodeSectionContent(SectionEntertainmentKit, raw)
	if err != nil {
		t.Fatalf("DecodeSectionContent returned error: %v", err)
	}

	kit := c.(EntertainmentKitContent)
	if kit.BannerImageURL != "/banner.jpg" {
		t.Fatalf("banner not preserved: %+v", kit)
	}
	if len(kit.Items) != 1 || kit.Items[0].ID != "ek1" {
		t.Fatalf("items not preserved: %+v", kit.Items)
	}
}

func TestDecodeEntertainmentKitLegacyArrayShape(t *testing.T) {
	raw := json.RawMessage(`[{"id":"ek1","label":"SPORTS CLUB"},{"id":"ek2","label":"KIDS CLUB"}]`)

	c, err := DecodeSectionContent(SectionEntertainmentKit, raw)
	if err != nil {
		t.Fatalf("DecodeSectionContent returned error: %v", err)
	}

	kit := c.(EntertainmentKitContent)
	if len(kit.Items) != 2 {
		t.Fatalf("legacy array not lifted into items: %+v", kit)
	}
	if kit.BannerImageURL != "" {
		t.Fatalf("legacy shape should have no banner, got %q", kit.BannerImageURL)
	}
}

func TestDecodeEntertainmentKitEmptyObject(t *testing.T) {
	c, err := DecodeSectionContent(SectionEntertainmentKit, json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("DecodeSectionContent returned error: %v", err)
	}
	kit := c.(EntertainmentKitContent)
	if kit.Items == nil || len(kit.Items) != 0 {
		t.Fatalf("expected empty items slice, got %+v", kit.Items)
	}
}

func TestEncodeSectionContentNormalizesLegacyKit(t *testing.T) {
	legacy := json.RawMessage(`[{"id":"ek1","label":"SPORTS CLUB"}]`)

	c, err := DecodeSectionContent(SectionEntertainmentKit, legacy)
	if err != nil {
		t.Fatalf("DecodeSectionContent returned error: %v", err)
	}
	enc, err := EncodeSectionContent(c)
	if err != nil {
		t.Fatalf("EncodeSectionContent returned error: %v", err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(enc, &out); err != nil {
		t.Fatalf("re-encoded kit is not an object: %s", enc)
	}
	if _, ok := out["items"]; !ok {
		t.Fatalf("re-encoded kit has no items key: %s", enc)
	}
}

func TestSectionTypeValid(t *testing.T) {
	for _, st := range SectionTypes {
		if !st.Valid() {
			t.Fatalf("%s should be valid", st)
		}
	}
	if SectionType("carousel").Valid() {
		t.Fatalf("unknown type reported valid")
	}
}
