package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/blogdb/pkg/domain"
)

// Generator renders stored articles and feeds back out as RSS and OPML
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateRSS creates an RSS 2.0 feed of summarized articles, in the order given
func (g *Generator) GenerateRSS(articles []domain.Article) (string, error) {
	items := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, g.convertToRSSItem(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "BlogDB - Article Summaries",
			Link:          g.baseURL + "/",
			Description:   "Dense summaries of articles collected from registered feeds",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(a domain.Article) *RSSItem {
	item := &RSSItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        a.URL,
		Description: a.Summary,
	}
	if a.Published != nil {
		item.PubDate = a.Published.Format(time.RFC1123Z)
	}
	return item
}

// GenerateOPML creates an OPML document listing all registered feeds
func (g *Generator) GenerateOPML(feeds []domain.Feed) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(feeds))
	for _, f := range feeds {
		outlines = append(outlines, outline{Text: f.URL, Type: "rss", XMLUrl: f.URL})
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: "BlogDB Feed Subscriptions", DateCreated: time.Now().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
