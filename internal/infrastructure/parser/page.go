package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"PinResolver/internal/jsonwalk"
)

// dataIslandSelector locates the JSON blob carrying the page's client-side state.
const dataIslandSelector = "#__PWS_DATA__"

// page is a parsed document scoped to a single extraction call.
type page struct {
	doc *goquery.Document

	islandParsed bool
	island       gjson.Result
	hasIsland    bool
}

func newPage(html string) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &page{doc: doc}, nil
}

// dataIsland returns the parsed JSON island. A missing or malformed island is
// reported as absent, never as an error.
func (p *page) dataIsland() (gjson.Result, bool) {
	if !p.islandParsed {
		p.islandParsed = true
		raw := p.doc.Find(dataIslandSelector).First().Text()
		p.island, p.hasIsland = jsonwalk.Parse(raw)
	}
	return p.island, p.hasIsland
}

// metaContent returns the first non-empty content attribute among selectors.
func (p *page) metaContent(selectors ...string) string {
	for _, sel := range selectors {
		v, ok := p.doc.Find(sel).First().Attr("content")
		if ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
