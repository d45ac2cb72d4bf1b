package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/guestlink/newsletter-backend/internal/errs"
)

// DefaultDocument is the structurally complete document used when neither the
// remote store nor the local cache holds anything. Content mirrors the seed
// newsletter the property ships with.
func DefaultDocument() NewsletterDocument {
	return NewsletterDocument{
		Sections:      DefaultSections(),
		Footer:        DefaultFooter(),
		Header:        nil, // absent means DefaultHeader at render time
		WidgetEnabled: false,
		WidgetCards:   []WidgetCard{},
		WidgetConfig:  nil, // absent means DefaultWidgetConfig at render time
	}
}

func DefaultSections() []SectionInstance {
	return []SectionInstance{
		mustSection("sec_hero_1", SectionHero, HeroContent{
			Title:    "WEEKLY",
			Subtitle: "highlights",
			BgImage:  "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?auto=format&fit=crop&q=80&w=1200",
		}),
		mustSection("sec_welcome_1", SectionWelcome, WelcomeContent{
			Text: "WELCOME TO RIXOS PREMIUM SAADIYAT ISLAND",
		}),
		mustSection("sec_ql_1", SectionQuickLinks, QuickLinksContent{
			{ID: "1", Label: "INTERACTIVE RESORT MAP", URL: "#", ImageURL: "https://picsum.photos/id/10/400/300"},
			{ID: "2", Label: "WELCOME LETTER", URL: "#", ImageURL: "https://picsum.photos/id/20/400/300"},
			{ID: "3", Label: "ANJANA SPA MENU", URL: "#", ImageURL: "https://picsum.photos/id/30/400/300"},
		}),
		mustSection("sec_fc_1", SectionFeatureCards, FeatureCardsContent{
			{
				ID:          "fc1",
				Title:       "YOUR NEXT DESTINATION - ALIÉE ISTANBUL",
				Heading:     "aliée",
				Description: "See Istanbul through Aliée's eye, the House of Curious Minds, where refinement is not possessed, but lived.",
				ImageURL:    "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=800",
				CtaURL:      "#",
			},
			{
				ID:          "fc2",
				Title:       "101 THINGS TO DO IN ABU DHABI",
				Heading:     "experience abu dhabi",
				Description: "Get ready for the holiday of a lifetime in Abu Dhabi with our hot list of 101 things to do.",
				ImageURL:    "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&q=80&w=800",
				CtaURL:      "#",
			},
		}),
		mustSection("sec_ek_1", SectionEntertainmentKit, EntertainmentKitContent{
			Items: []EntertainmentKitItem{
				{ID: "ek1", Label: "EXCLUSIVE SPORTS CLUB", Sublabel: "View and download schedule", IconURL: "/icons/sports.svg", URL: "#"},
				{ID: "ek2", Label: "RIXY KIDS CLUB", Sublabel: "View and download weekly program", IconURL: "/icons/kids.svg", URL: "#"},
				{ID: "ek3", Label: "SPORTS MATCHES", Sublabel: "View and download program", IconURL: "/icons/matches.svg", URL: "#"},
				{ID: "ek4", Label: "LIVE ENTERTAINMENT", Sublabel: "View and download program", IconURL: "/icons/live.svg", URL: "#"},
			},
		}),
		mustSection("sec_ss_1", SectionSportsSchedule, SportsScheduleContent{
			{ID: "s1", Date: "07", Month: "JAN", TeamA: "West Ham United", TeamB: "Nottingham Forest", League: "English Premier League", Time: "00:00", Location: "Savanna Sol"},
			{ID: "s2", Date: "07", Month: "JAN", TeamA: "Fulham", TeamB: "Chelsea", League: "English Premier League", Time: "23:30", Location: "Savanna Sol"},
		}),
		mustSection("sec_ch_1", SectionCharity, CharityContent{
			Title:       "HELP US BUILD A SCHOOL IN MALAWI",
			Heading:     "Dubai Cares",
			Description: "Donate at checkout or scan the QR code below to help build a school in Malawi, in collaboration with Dubai Cares.",
			Subtext:     "Together, we're laying the first brick for brighter futures.",
			ImageURL:    "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?auto=format&fit=crop&q=80&w=800",
			CtaLabel:    "Click • Give • Change a Life",
			CtaURL:      "#",
		}),
	}
}

func DefaultFooter() FooterData {
	return FooterData{
		ConnectLabel: "CONNECT WITH US",
		SocialLinks: []SocialLink{
			{ID: "sl1", IconURL: "/icons/instagram.svg", URL: "https://instagram.com"},
			{ID: "sl2", IconURL: "/icons/facebook.svg", URL: "https://facebook.com"},
		},
		CopyrightText: "© Rixos Premium Saadiyat Island. All rights reserved.",
	}
}

func DefaultHeader() HeaderData {
	return HeaderData{
		LogoURL: "/logo.svg",
		LinkURL: "/",
	}
}

func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		ButtonLabel:   "OFFERS",
		ButtonIconURL: "/icons/gift.svg",
		EnableBounce:  true,
	}
}

// widgetCardLifetime is the default active window for a freshly created card.
const widgetCardLifetime = 30 * 24 * time.Hour

// NewWidgetCard returns a card template with the default active window
// starting now.
func NewWidgetCard(now time.Time) WidgetCard {
	return WidgetCard{
		ID:        uuid.New().String(),
		Title:     "NEW OFFER",
		Subtitle:  "Limited time",
		ImageURL:  "https://picsum.photos/600/400",
		StartTime: now,
		EndTime:   now.Add(widgetCardLifetime),
		IsActive:  true,
	}
}

// TemplateContent returns the default content a freshly added section starts
// with. List types begin with one template item so the editor has something
// to show.
func TemplateContent(t SectionType) (SectionContent, error) {
	switch t {
	case SectionHero:
		return HeroContent{Title: "NEW", Subtitle: "highlights", BgImage: "https://picsum.photos/1200/600"}, nil
	case SectionWelcome:
		return WelcomeContent{Text: "WELCOME TO RIXOS PREMIUM SAADIYAT ISLAND"}, nil
	case SectionQuickLinks:
		return QuickLinksContent{TemplateQuickLink()}, nil
	case SectionFeatureCards:
		return FeatureCardsContent{TemplateFeatureCard()}, nil
	case SectionEntertainmentKit:
		return EntertainmentKitContent{Items: []EntertainmentKitItem{TemplateEntertainmentKitItem()}}, nil
	case SectionSportsSchedule:
		return SportsScheduleContent{TemplateSportMatch()}, nil
	case SectionCharity:
		return CharityContent{
			Title:       "NEW CHARITY INITIATIVE",
			Heading:     "Heading",
			Description: "Description",
			ImageURL:    "https://picsum.photos/800/600",
		}, nil
	}
	return nil, errs.NewValidationError("unknown section type: " + string(t))
}

func TemplateQuickLink() QuickLink {
	return QuickLink{ID: uuid.New().String(), Label: "NEW LINK", URL: "#", ImageURL: "https://picsum.photos/400/300"}
}

func TemplateFeatureCard() FeatureCard {
	return FeatureCard{ID: uuid.New().String(), Title: "TITLE", Heading: "Heading", Description: "Desc", ImageURL: "https://picsum.photos/800/600", CtaURL: "#"}
}

func TemplateEntertainmentKitItem() EntertainmentKitItem {
	return EntertainmentKitItem{ID: uuid.New().String(), Label: "NEW KIT", Sublabel: "Subtext", IconURL: "/icons/sports.svg", URL: "#"}
}

func TemplateSportMatch() SportMatch {
	return SportMatch{ID: uuid.New().String(), Date: "01", Month: "JAN", TeamA: "New Team", TeamB: "Opponent", League: "League", Time: "20:00", Location: "Bar"}
}

func mustSection(id string, t SectionType, c SectionContent) SectionInstance {
	raw, err := json.Marshal(c)
	if err != nil {
		raw = []byte("{}")
	}
	return SectionInstance{ID: id, Type: t, Content: raw}
}
