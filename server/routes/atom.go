// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/content"
)

// atomLink represents a link in an Atom feed.
type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr,omitempty"`
}

// atomAuthor represents an author in an Atom feed.
type atomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri"`
}

// atomCategory represents a category (tag) on an Atom entry.
type atomCategory struct {
	Term string `xml:"term,attr"`
}

// atomContent is the body of an entry. type="html" means the content is
// escaped HTML text, which the encoder produces from chardata.
type atomContent struct {
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// atomEntry represents an entry in an Atom feed.
type atomEntry struct {
	XMLName    xml.Name       `xml:"entry"`
	ID         string         `xml:"id"`
	Link       atomLink       `xml:"link"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Title      string         `xml:"title"`
	Categories []atomCategory `xml:"category"`
	Summary    string         `xml:"summary,omitempty"`
	Content    atomContent    `xml:"content"`
}

// atomFeed is the root element of an Atom feed.
type atomFeed struct {
	XMLName  xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	ID       string      `xml:"id"`
	Links    []atomLink  `xml:"link"`
	Updated  string      `xml:"updated"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	Author   atomAuthor  `xml:"author"`
	Entries  []atomEntry `xml:"entry"`
}

// FeedPage is the handler for the site's Atom feed.
func (h *Handlers) FeedPage(w http.ResponseWriter, r *http.Request) error {
	feed := buildFeed(h.site.Recent(config.Global.Content.FeedPosts))

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")

	_, _ = w.Write([]byte(xml.Header))

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(feed); err != nil {
		return fmt.Errorf("failed to encode atom feed: %w", err)
	}

	return nil
}

// buildFeed assembles the Atom feed from the newest posts. All links are
// absolute, built from the configured base URL rather than the request host,
// so the feed stays stable behind proxies.
func buildFeed(posts []*content.Post) *atomFeed {
	site := config.Global.Site
	base := strings.TrimRight(site.BaseURL.String(), "/")
	feedURL := base + "/feed.xml"

	updated := time.Now()
	if len(posts) > 0 {
		updated = posts[0].Date
	}

	feed := &atomFeed{
		ID: base + "/",
		Links: []atomLink{
			{Rel: "self", Href: feedURL, Type: "application/atom+xml"},
			{Rel: "alternate", Href: base + "/", Type: "text/html"},
		},
		Updated:  updated.Format(time.RFC3339),
		Title:    site.Title,
		Subtitle: site.Description,
		Author: atomAuthor{
			Name: site.Author,
			URI:  base + "/",
		},
		Entries: make([]atomEntry, 0, len(posts)),
	}

	for _, post := range posts {
		postURL := base + "/posts/" + url.PathEscape(post.Slug)

		categories := make([]atomCategory, 0, len(post.Tags))
		for _, tag := range post.Tags {
			categories = append(categories, atomCategory{Term: tag})
		}

		feed.Entries = append(feed.Entries, atomEntry{
			ID:         postURL,
			Link:       atomLink{Rel: "alternate", Href: postURL, Type: "text/html"},
			Published:  post.Date.Format(time.RFC3339),
			Updated:    post.Date.Format(time.RFC3339),
			Title:      post.Title,
			Categories: categories,
			Summary:    post.Excerpt,
			Content:    atomContent{Type: "html", Content: post.HTML},
		})
	}

	return feed
}
