package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"google.golang.org/api/chat/v1"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

const (
	// PresensiLabel marks the attendance link inside a card description.
	PresensiLabel = "Link Presensi"

	LinkNotFoundText = "Tidak ditemukan link"
	ViewOnTrelloText = "🔗 Lihat di Trello"

	DefaultDateLayout = "1/2/2006"
)

// Composer renders Trello cards into Google Chat card messages.
type Composer struct {
	presensi   *LinkExtractor
	location   *time.Location
	dateLayout string
}

type ComposerOption func(*Composer)

// WithLocation sets the timezone due dates are rendered in.
func WithLocation(loc *time.Location) ComposerOption {
	return func(c *Composer) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithDateLayout sets the time layout used for due dates.
func WithDateLayout(layout string) ComposerOption {
	return func(c *Composer) {
		if strings.TrimSpace(layout) != "" {
			c.dateLayout = layout
		}
	}
}

func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		presensi:   NewLinkExtractor(PresensiLabel),
		location:   time.UTC,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compose builds the message for card. Sections are emitted in a fixed order:
// caption (only when non-blank), link, metadata (only with labels or a due
// date) and the button back to Trello. The header carries title and destination.
func (c *Composer) Compose(card models.Card, caption, destinationName string) *chat.Message {
	sections := make([]*chat.GoogleAppsCardV1Section, 0, 4)

	if caption = strings.TrimSpace(caption); caption != "" {
		sections = append(sections, textSection("🏷️ "+html.EscapeString(caption)))
	}

	sections = append(sections, textSection(c.linkText(card.Desc)))

	if meta := c.metadataText(card); meta != "" {
		sections = append(sections, textSection(meta))
	}

	sections = append(sections, &chat.GoogleAppsCardV1Section{
		Widgets: []*chat.GoogleAppsCardV1Widget{{
			ButtonList: &chat.GoogleAppsCardV1ButtonList{
				Buttons: []*chat.GoogleAppsCardV1Button{{
					Text: ViewOnTrelloText,
					OnClick: &chat.GoogleAppsCardV1OnClick{
						OpenLink: &chat.GoogleAppsCardV1OpenLink{Url: card.URL},
					},
				}},
			},
		}},
	})

	return &chat.Message{
		CardsV2: []*chat.CardWithId{{
			CardId: "trello-card-" + card.ID,
			Card: &chat.GoogleAppsCardV1Card{
				Header: &chat.GoogleAppsCardV1CardHeader{
					Title:    "📌 " + card.Name,
					Subtitle: "Sent to " + destinationName,
				},
				Sections: sections,
			},
		}},
	}
}

func (c *Composer) linkText(desc string) string {
	link, ok := c.presensi.Extract(desc)
	if !ok {
		return LinkNotFoundText
	}
	return fmt.Sprintf(`• <b>Link Presensi Online:</b> <a href="%s">%s</a>`,
		html.EscapeString(link.URL), html.EscapeString(link.Text))
}

func (c *Composer) metadataText(card models.Card) string {
	var lines []string

	if len(card.Labels) > 0 {
		names := make([]string, 0, len(card.Labels))
		for _, l := range card.Labels {
			name := strings.TrimSpace(l.Name)
			if name == "" {
				name = l.Color
			}
			names = append(names, html.EscapeString(name))
		}
		lines = append(lines, "<b>Labels:</b> "+strings.Join(names, ", "))
	}

	if card.HasDue() {
		line := "<b>Due date:</b> " + card.Due.In(c.location).Format(c.dateLayout)
		if card.DueComplete {
			line += " (Completed)"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "<br>")
}

func textSection(text string) *chat.GoogleAppsCardV1Section {
	return &chat.GoogleAppsCardV1Section{
		Widgets: []*chat.GoogleAppsCardV1Widget{{
			TextParagraph: &chat.GoogleAppsCardV1TextParagraph{Text: text},
		}},
	}
}
