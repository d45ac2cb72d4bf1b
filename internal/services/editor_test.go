package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/helpers"
)

type stubEngine struct {
	current     models.NewsletterDocument
	commitErr   error
	commitCalls int
	committed   models.NewsletterDocument
	subscribers []func(models.NewsletterDocument)
}

func (s *stubEngine) Current() models.NewsletterDocument { return s.current.Clone() }

func (s *stubEngine) Commit(_ context.Context, doc models.NewsletterDocument) error {
	s.commitCalls++
	s.committed = doc
	return s.commitErr
}

func (s *stubEngine) Subscribe(fn func(models.NewsletterDocument)) func() {
	s.subscribers = append(s.subscribers, fn)
	return func() {}
}

func (s *stubEngine) Syncing() bool { return false }

func sectionByID(t *testing.T, doc models.NewsletterDocument, id string) models.SectionInstance {
	t.Helper()
	for _, sec := range doc.Sections {
		if sec.ID == id {
			return sec
		}
	}
	t.Fatalf("section %s not found", id)
	return models.SectionInstance{}
}

func TestOpenDraftCopiesCurrentDocument(t *testing.T) {
	engine := &stubEngine{current: models.DefaultDocument()}
	svc := NewEditorService(engine)

	id, doc := svc.OpenDraft(helpers.TestCtx())
	if id == "" {
		t.Fatalf("draft needs an id")
	}
	if len(doc.Sections) != len(engine.current.Sections) {
		t.Fatalf("draft should start from the committed document")
	}

	// mutating the draft must not leak into the engine's document
	if err := svc.RemoveSection(id, doc.Sections[0].ID); err != nil {
		t.Fatalf("RemoveSection failed: %v", err)
	}
	if len(engine.current.Sections) != len(models.DefaultSections()) {
		t.Fatalf("draft edit leaked into the committed document")
	}
}

func TestDraftNotFound(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})

	if _, err := svc.Draft("nope"); err == nil {
		t.Fatalf("expected error for unknown draft")
	}
	if err := svc.Discard("nope"); err == nil {
		t.Fatalf("expected error for unknown draft")
	}
}

func TestSaveCommitsWholeDraftAndKeepsItForRetry(t *testing.T) {
	engine := &stubEngine{current: models.DefaultDocument(), commitErr: errors.New("remote down")}
	svc := NewEditorService(engine)

	id, _ := svc.OpenDraft(helpers.TestCtx())
	if err := svc.UpdateWidget(id, true, nil); err != nil {
		t.Fatalf("UpdateWidget failed: %v", err)
	}

	if _, err := svc.Save(helpers.TestCtx(), id); err == nil {
		t.Fatalf("expected commit failure to surface")
	}
	if engine.commitCalls != 1 || !engine.committed.WidgetEnabled {
		t.Fatalf("draft not committed: calls=%d", engine.commitCalls)
	}

	// the draft survives the failure so the save can be retried as-is
	engine.commitErr = nil
	doc, err := svc.Save(helpers.TestCtx(), id)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !doc.WidgetEnabled {
		t.Fatalf("retried save lost the edit")
	}
}

func TestAddAndRemoveSectionRoundTrip(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, before := svc.OpenDraft(helpers.TestCtx())

	added, err := svc.AddSection(id, models.SectionWelcome)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	doc, _ := svc.Draft(id)
	if len(doc.Sections) != len(before.Sections)+1 {
		t.Fatalf("section not appended")
	}
	if doc.Sections[len(doc.Sections)-1].ID != added.ID {
		t.Fatalf("new section should land at the end")
	}

	if err := svc.RemoveSection(id, added.ID); err != nil {
		t.Fatalf("RemoveSection failed: %v", err)
	}
	doc, _ = svc.Draft(id)
	if len(doc.Sections) != len(before.Sections) {
		t.Fatalf("section not removed")
	}
}

func TestAddSectionRejectsUnknownType(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, _ := svc.OpenDraft(helpers.TestCtx())

	if _, err := svc.AddSection(id, models.SectionType("video")); err == nil {
		t.Fatalf("expected error for unknown section type")
	}
}

func TestMoveSectionIsItsOwnInverse(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, before := svc.OpenDraft(helpers.TestCtx())

	if err := svc.MoveSection(id, 1, "down"); err != nil {
		t.Fatalf("MoveSection down failed: %v", err)
	}
	doc, _ := svc.Draft(id)
	if doc.Sections[2].ID != before.Sections[1].ID {
		t.Fatalf("section did not move down")
	}

	if err := svc.MoveSection(id, 2, "up"); err != nil {
		t.Fatalf("MoveSection up failed: %v", err)
	}
	doc, _ = svc.Draft(id)
	for i := range before.Sections {
		if doc.Sections[i].ID != before.Sections[i].ID {
			t.Fatalf("move up did not restore the order at %d", i)
		}
	}
}

func TestMoveSectionBoundariesAreNoOps(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, before := svc.OpenDraft(helpers.TestCtx())

	if err := svc.MoveSection(id, 0, "up"); err != nil {
		t.Fatalf("boundary move returned error: %v", err)
	}
	last := len(before.Sections) - 1
	if err := svc.MoveSection(id, last, "down"); err != nil {
		t.Fatalf("boundary move returned error: %v", err)
	}

	doc, _ := svc.Draft(id)
	for i := range before.Sections {
		if doc.Sections[i].ID != before.Sections[i].ID {
			t.Fatalf("boundary move changed the order at %d", i)
		}
	}

	if err := svc.MoveSection(id, 1, "sideways"); err == nil {
		t.Fatalf("expected error for invalid direction")
	}
}

func TestUpdateSectionContentValidatesShape(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, _ := svc.OpenDraft(helpers.TestCtx())

	err := svc.UpdateSectionContent(id, "sec_hero_1", json.RawMessage(`{"title":"NEW","subtitle":"week","bgImage":"x"}`))
	if err != nil {
		t.Fatalf("UpdateSectionContent failed: %v", err)
	}
	doc, _ := svc.Draft(id)
	var hero models.HeroContent
	if err := json.Unmarshal(sectionByID(t, doc, "sec_hero_1").Content, &hero); err != nil {
		t.Fatalf("hero content does not decode: %v", err)
	}
	if hero.Title != "NEW" {
		t.Fatalf("content not replaced: %+v", hero)
	}

	// a quickLinks section must reject a non-array payload
	if err := svc.UpdateSectionContent(id, "sec_ql_1", json.RawMessage(`{"bad":"shape"}`)); err == nil {
		t.Fatalf("expected validation error for wrong content shape")
	}

	// unknown section id is a silent no-op
	if err := svc.UpdateSectionContent(id, "sec_missing", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("unknown section id should be a no-op, got %v", err)
	}
}

func TestItemOperations(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, _ := svc.OpenDraft(helpers.TestCtx())

	if err := svc.AddItem(id, "sec_ql_1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	doc, _ := svc.Draft(id)
	var links models.QuickLinksContent
	_ = json.Unmarshal(sectionByID(t, doc, "sec_ql_1").Content, &links)
	if len(links) != 4 {
		t.Fatalf("expected 4 quick links after add, got %d", len(links))
	}

	updated := `{"id":"1","label":"UPDATED","url":"#","imageUrl":"x"}`
	if err := svc.UpdateItem(id, "sec_ql_1", 0, json.RawMessage(updated)); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	doc, _ = svc.Draft(id)
	_ = json.Unmarshal(sectionByID(t, doc, "sec_ql_1").Content, &links)
	if links[0].Label != "UPDATED" {
		t.Fatalf("item not updated: %+v", links[0])
	}

	if err := svc.UpdateItem(id, "sec_ql_1", 99, json.RawMessage(updated)); err == nil {
		t.Fatalf("expected error for out of range index")
	}

	if err := svc.RemoveItem(id, "sec_ql_1", "1"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	doc, _ = svc.Draft(id)
	_ = json.Unmarshal(sectionByID(t, doc, "sec_ql_1").Content, &links)
	for _, l := range links {
		if l.ID == "1" {
			t.Fatalf("item 1 still present after removal")
		}
	}

	// the welcome section has no item list
	if err := svc.AddItem(id, "sec_welcome_1"); err == nil {
		t.Fatalf("expected error for section without items")
	}
}

func TestItemMutationNormalizesLegacyKit(t *testing.T) {
	doc := models.DefaultDocument()
	// store the kit in the legacy bare-array shape
	legacy := json.RawMessage(`[{"id":"ek1","label":"SPORTS CLUB","sublabel":"s","iconUrl":"/i.svg","url":"#"}]`)
	for i := range doc.Sections {
		if doc.Sections[i].Type == models.SectionEntertainmentKit {
			doc.Sections[i].Content = legacy
		}
	}

	svc := NewEditorService(&stubEngine{current: doc})
	id, _ := svc.OpenDraft(helpers.TestCtx())

	if err := svc.AddItem(id, "sec_ek_1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	after, _ := svc.Draft(id)
	raw := sectionByID(t, after, "sec_ek_1").Content
	var kit models.EntertainmentKitContent
	if err := json.Unmarshal(raw, &kit); err != nil {
		t.Fatalf("kit did not migrate to the object shape: %s", raw)
	}
	if len(kit.Items) != 2 {
		t.Fatalf("expected 2 items after add, got %d", len(kit.Items))
	}
}

func TestWidgetCardOperations(t *testing.T) {
	svc := NewEditorService(&stubEngine{current: models.DefaultDocument()})
	id, _ := svc.OpenDraft(helpers.TestCtx())

	card, err := svc.AddWidgetCard(id)
	if err != nil {
		t.Fatalf("AddWidgetCard failed: %v", err)
	}
	if card.ID == "" || !card.IsActive {
		t.Fatalf("unexpected new card: %+v", card)
	}

	edited := card
	edited.ID = "ignored"
	edited.Title = "SPA OFFER"
	if err := svc.UpdateWidgetCard(id, 0, edited); err != nil {
		t.Fatalf("UpdateWidgetCard failed: %v", err)
	}
	doc, _ := svc.Draft(id)
	if doc.WidgetCards[0].Title != "SPA OFFER" {
		t.Fatalf("card not updated")
	}
	if doc.WidgetCards[0].ID != card.ID {
		t.Fatalf("card id must be preserved on update")
	}

	if err := svc.UpdateWidgetCard(id, 5, edited); err == nil {
		t.Fatalf("expected error for out of range card index")
	}

	if err := svc.RemoveWidgetCard(id, card.ID); err != nil {
		t.Fatalf("RemoveWidgetCard failed: %v", err)
	}
	doc, _ = svc.Draft(id)
	if len(doc.WidgetCards) != 0 {
		t.Fatalf("card not removed")
	}
}
