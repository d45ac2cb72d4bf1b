package models

import (
	"encoding/json"

	"github.com/guestlink/newsletter-backend/internal/errs"
)

// DocumentPatch is the field-presence view of a fetched or pushed payload.
// A nil field was absent (or undecodable) in the payload and must keep its
// previous value on merge; a non-nil field replaces the previous value
// wholesale. Change-feed notifications may arrive duplicated or out of
// order, so applying a patch has to be idempotent — field replacement is.
type DocumentPatch struct {
	Sections      *[]SectionInstance
	Footer        *FooterData
	Header        *HeaderData
	WidgetEnabled *bool
	WidgetCards   *[]WidgetCard
	WidgetConfig  *WidgetConfig
}

// Valid reports whether the payload is structurally a document: it must carry
// a sections sequence. Anything else is treated as corrupt and never allowed
// to replace a whole document.
func (p DocumentPatch) Valid() bool {
	return p.Sections != nil
}

// ParsePatch decodes a raw JSON payload leniently, field by field. A field
// that is missing, null, or fails to decode is simply absent from the patch;
// in particular a non-array sections value can never clobber the previous
// sections sequence. Only a payload that is not a JSON object at all is an
// error.
func ParsePatch(raw []byte) (DocumentPatch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return DocumentPatch{}, errs.NewValidationError("payload is not a JSON object")
	}

	var p DocumentPatch
	if r, ok := present(fields, "sections"); ok {
		var v []SectionInstance
		if err := json.Unmarshal(r, &v); err == nil {
			p.Sections = &v
		}
	}
	if r, ok := present(fields, "footer"); ok {
		var v FooterData
		if err := json.Unmarshal(r, &v); err == nil {
			p.Footer = &v
		}
	}
	if r, ok := present(fields, "header"); ok {
		var v HeaderData
		if err := json.Unmarshal(r, &v); err == nil {
			p.Header = &v
		}
	}
	if r, ok := present(fields, "widgetEnabled"); ok {
		var v bool
		if err := json.Unmarshal(r, &v); err == nil {
			p.WidgetEnabled = &v
		}
	}
	if r, ok := present(fields, "widgetCards"); ok {
		var v []WidgetCard
		if err := json.Unmarshal(r, &v); err == nil {
			p.WidgetCards = &v
		}
	}
	if r, ok := present(fields, "widgetConfig"); ok {
		var v WidgetConfig
		if err := json.Unmarshal(r, &v); err == nil {
			p.WidgetConfig = &v
		}
	}
	return p, nil
}

func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	r, ok := fields[key]
	if !ok || string(r) == "null" {
		return nil, false
	}
	return r, true
}

// Merge applies a patch over a base document: each top-level field present in
// the patch replaces the base value wholesale, absent fields keep the base
// value. Pure function of its inputs.
func Merge(base NewsletterDocument, p DocumentPatch) NewsletterDocument {
	out := base
	if p.Sections != nil {
		out.Sections = *p.Sections
	}
	if p.Footer != nil {
		out.Footer = *p.Footer
	}
	if p.Header != nil {
		out.Header = p.Header
	}
	if p.WidgetEnabled != nil {
		out.WidgetEnabled = *p.WidgetEnabled
	}
	if p.WidgetCards != nil {
		out.WidgetCards = *p.WidgetCards
	}
	if p.WidgetConfig != nil {
		out.WidgetConfig = p.WidgetConfig
	}
	return out
}

// Repair enforces the one structural invariant: sections is always a
// sequence. A document that lost it gets the default sections back instead of
// being discarded.
func Repair(doc NewsletterDocument) NewsletterDocument {
	if doc.Sections == nil {
		doc.Sections = DefaultSections()
	}
	return doc
}
