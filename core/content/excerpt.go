// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxExcerptRunes bounds the excerpt length on the index page and in feeds.
const maxExcerptRunes = 280

// extractExcerpt returns the plain text of the first paragraph of rendered
// HTML, truncated on a word boundary.
func extractExcerpt(renderedHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(doc.Find("p").First().Text())

	return truncateOnWord(text, maxExcerptRunes)
}

// truncateOnWord cuts s to at most limit runes without splitting a word,
// appending an ellipsis when anything was dropped.
func truncateOnWord(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}

	if cut == 0 {
		cut = limit
	}

	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace) + "…"
}

// extractHeadings walks the rendered HTML and collects h2/h3 anchors for
// the post's table of contents. Headings without an id are skipped.
func extractHeadings(renderedHTML string) []Heading {
	var headings []Heading

	tokenizer := html.NewTokenizer(strings.NewReader(renderedHTML))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return headings
		case html.StartTagToken:
			token := tokenizer.Token()

			var level int

			switch token.DataAtom {
			case atom.H2:
				level = 2
			case atom.H3:
				level = 3
			default:
				continue
			}

			id := attrValue(token, "id")
			if id == "" {
				continue
			}

			headings = append(headings, Heading{
				Level: level,
				ID:    id,
				Text:  headingText(tokenizer, token.DataAtom),
			})
		}
	}
}

// headingText consumes tokens until the matching end tag, concatenating the
// text content in between.
func headingText(tokenizer *html.Tokenizer, until atom.Atom) string {
	var sb strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(tokenizer.Text())
		case html.EndTagToken:
			if token := tokenizer.Token(); token.DataAtom == until {
				return strings.TrimSpace(sb.String())
			}
		}
	}
}

func attrValue(token html.Token, name string) string {
	for _, attr := range token.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}

	return ""
}
