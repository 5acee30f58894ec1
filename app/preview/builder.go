package preview

import (
	"fmt"
	"html"
	"strings"
	"time"
)

var categoryColors = map[string]string{
	"World":         "#3b82f6",
	"Technology":    "#8b5cf6",
	"Business":      "#10b981",
	"Science":       "#06b6d4",
	"Health":        "#ec4899",
	"Sports":        "#f97316",
	"Entertainment": "#ef4444",
	"Politics":      "#6b7280",
	"General":       "#6366f1",
}

const defaultCategoryColor = "#6366f1"

var typeBadgeLabels = map[ArticleType]string{
	TypeCorrection:  "Correction",
	TypeDiscovery:   "Discovery",
	TypeSportsEvent: "Sports Event",
	TypeCrisis:      "Crisis",
	TypePolitics:    "Politics",
}

// Article carries the fields the builder renders into a preview.
type Article struct {
	Title       string
	URL         string
	ImageURL    string
	Description string
	Author      string
	Source      string
	Category    string
	PublishedAt time.Time
}

// Builder renders an analyzed article into a self-contained HTML
// fragment with inline styles, suitable for embedding in a reader
// without external stylesheets.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Run renders the preview. All article-derived text is HTML-escaped, so
// markup or scripts in source content render inert. now anchors the
// relative published-date label.
func (b *Builder) Run(article Article, analysis Analysis, now time.Time) string {
	color := categoryColor(article.Category)

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 680px; margin: 0 auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">`)

	// Header: category badge, source, relative date
	fmt.Fprintf(&sb, `<div style="padding: 16px 20px; border-bottom: 1px solid #e5e7eb; display: flex; align-items: center; gap: 10px;">`+
		`<span style="background: %s; color: #ffffff; padding: 3px 10px; border-radius: 9999px; font-size: 12px; font-weight: 600;">%s</span>`+
		`<span style="color: #6b7280; font-size: 13px;">%s</span>`,
		color, html.EscapeString(article.Category), html.EscapeString(article.Source))
	if label, ok := typeBadgeLabels[analysis.ArticleType]; ok {
		fmt.Fprintf(&sb, `<span style="background: #fef3c7; color: #92400e; padding: 3px 10px; border-radius: 9999px; font-size: 12px; font-weight: 600;">%s</span>`,
			html.EscapeString(label))
	}
	if label := FormatRelativeDate(article.PublishedAt, now); label != "" {
		fmt.Fprintf(&sb, `<span style="color: #9ca3af; font-size: 13px; margin-left: auto;">%s</span>`, html.EscapeString(label))
	}
	sb.WriteString(`</div>`)

	if article.ImageURL != "" {
		fmt.Fprintf(&sb, `<img src="%s" alt="%s" style="width: 100%%; max-height: 360px; object-fit: cover; display: block;">`,
			html.EscapeString(article.ImageURL), html.EscapeString(article.Title))
	}

	sb.WriteString(`<div style="padding: 20px;">`)
	fmt.Fprintf(&sb, `<h2 style="margin: 0 0 12px; font-size: 22px; line-height: 1.3; color: #111827;">%s</h2>`,
		html.EscapeString(article.Title))

	if article.Description != "" {
		fmt.Fprintf(&sb, `<p style="margin: 0 0 16px; color: #4b5563; font-size: 15px; line-height: 1.6;">%s</p>`,
			html.EscapeString(article.Description))
	}

	if len(analysis.KeyPoints) > 0 {
		fmt.Fprintf(&sb, `<div style="margin: 16px 0;"><div style="font-size: 13px; font-weight: 600; color: %s; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 8px;">Key Points</div><ul style="margin: 0; padding-left: 20px; color: #374151; font-size: 15px; line-height: 1.6;">`, color)
		for _, point := range analysis.KeyPoints {
			fmt.Fprintf(&sb, `<li style="margin-bottom: 6px;">%s</li>`, html.EscapeString(point))
		}
		sb.WriteString(`</ul></div>`)
	}

	b.writeEntities(&sb, analysis.Entities)

	if analysis.Context != "" {
		fmt.Fprintf(&sb, `<div style="margin: 16px 0; padding: 12px 16px; background: #f9fafb; border-left: 3px solid %s; border-radius: 0 8px 8px 0;"><div style="font-size: 13px; font-weight: 600; color: #111827; margin-bottom: 4px;">Context</div><div style="color: #4b5563; font-size: 14px; line-height: 1.5;">%s</div></div>`,
			color, html.EscapeString(analysis.Context))
	}
	if analysis.Significance != "" {
		fmt.Fprintf(&sb, `<div style="margin: 16px 0; padding: 12px 16px; background: #f9fafb; border-left: 3px solid %s; border-radius: 0 8px 8px 0;"><div style="font-size: 13px; font-weight: 600; color: #111827; margin-bottom: 4px;">Why It Matters</div><div style="color: #4b5563; font-size: 14px; line-height: 1.5;">%s</div></div>`,
			color, html.EscapeString(analysis.Significance))
	}

	sb.WriteString(`<div style="margin-top: 20px; padding-top: 16px; border-top: 1px solid #e5e7eb; display: flex; align-items: center; justify-content: space-between;">`)
	if article.Author != "" {
		fmt.Fprintf(&sb, `<span style="color: #6b7280; font-size: 13px;">By %s</span>`, html.EscapeString(article.Author))
	} else {
		sb.WriteString(`<span></span>`)
	}
	if article.URL != "" {
		fmt.Fprintf(&sb, `<a href="%s" style="color: %s; font-size: 14px; font-weight: 600; text-decoration: none;">Read full story →</a>`,
			html.EscapeString(article.URL), color)
	}
	sb.WriteString(`</div></div></div>`)

	return sb.String()
}

func (b *Builder) writeEntities(sb *strings.Builder, ents Entities) {
	groups := []struct {
		label string
		items []string
	}{
		{"Organizations", ents.Organizations},
		{"People", ents.People},
		{"Locations", ents.Locations},
	}
	empty := true
	for _, g := range groups {
		if len(g.items) > 0 {
			empty = false
		}
	}
	if empty {
		return
	}

	sb.WriteString(`<div style="margin: 16px 0; display: flex; flex-wrap: wrap; gap: 6px;">`)
	for _, g := range groups {
		for _, item := range g.items {
			fmt.Fprintf(sb, `<span title="%s" style="background: #f3f4f6; color: #374151; padding: 2px 10px; border-radius: 9999px; font-size: 12px;">%s</span>`,
				html.EscapeString(g.label), html.EscapeString(item))
		}
	}
	sb.WriteString(`</div>`)
}

func categoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultCategoryColor
}

// FormatRelativeDate renders a published timestamp relative to now,
// switching to an absolute date once the article is a week old. A zero
// timestamp yields an empty string.
func FormatRelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	days := int(d.Hours()) / 24
	switch {
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("Jan 02, 2006")
}
