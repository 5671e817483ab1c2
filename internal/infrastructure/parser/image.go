package parser

import (
	"regexp"
	"strings"

	"PinResolver/internal/jsonwalk"
	"PinResolver/internal/strategy"
)

const originalsSegment = "/originals/"

// sizeSegmentExpr matches size-bucketed thumbnail segments such as /236x/.
var sizeSegmentExpr = regexp.MustCompile(`/\d+x/`)

var imageChain = strategy.NewChain[*page](
	strategy.Strategy[*page]{Name: StrategyOriginals, Find: imageFromDataIsland},
	strategy.Strategy[*page]{Name: StrategyUpgradedMeta, Find: imageFromMeta},
)

// UpgradeImageURL rewrites the first size segment of a thumbnail URL to
// /originals/. URLs without a size segment are returned unchanged.
func UpgradeImageURL(u string) string {
	loc := sizeSegmentExpr.FindStringIndex(u)
	if loc == nil {
		return u
	}
	return u[:loc[0]] + originalsSegment + u[loc[1]:]
}

func imageFromDataIsland(p *page) (string, bool) {
	root, ok := p.dataIsland()
	if !ok {
		return "", false
	}
	return jsonwalk.FindString(root, "url", func(s string) bool {
		return strings.Contains(s, originalsSegment)
	})
}

func imageFromMeta(p *page) (string, bool) {
	base := p.metaContent(ogImage, twitterImage)
	if base == "" {
		return "", false
	}
	return UpgradeImageURL(base), true
}

// imageFromPage only consults the island when the page advertises an image at all.
func imageFromPage(p *page) (string, string, bool) {
	if p.metaContent(ogImage, twitterImage) == "" {
		return "", "", false
	}
	return imageChain.First(p)
}
