package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"PinResolver/internal/jsonwalk"
	"PinResolver/internal/strategy"
)

const (
	ogVideoSecure = `meta[property="og:video:secure_url"]`
	ogVideo       = `meta[property="og:video"]`
	videoToken    = ".mp4"
	securePrefix  = "https://"
)

// scriptVideoExpr finds mp4 URLs on the pin CDN or on any quoted path.
var scriptVideoExpr = regexp.MustCompile(`https://(?:v1\.pinimg\.com/videos/|[^"']+/)[^"']+\.mp4(?:\?[^"']+)?`)

// Strategy names reported by the engine.
const (
	StrategyDataIsland   = "data-island"
	StrategyOpenGraph    = "opengraph"
	StrategyInlineScript = "inline-script"
	StrategyOriginals    = "data-island-originals"
	StrategyUpgradedMeta = "upgraded-meta"
)

var videoChain = strategy.NewChain[*page](
	strategy.Strategy[*page]{Name: StrategyDataIsland, Find: videoFromDataIsland},
	strategy.Strategy[*page]{Name: StrategyOpenGraph, Find: videoFromOpenGraph},
	strategy.Strategy[*page]{Name: StrategyInlineScript, Find: videoFromInlineScripts},
)

func isVideoURL(s string) bool {
	return strings.HasPrefix(s, securePrefix) && strings.Contains(s, videoToken)
}

func videoFromDataIsland(p *page) (string, bool) {
	root, ok := p.dataIsland()
	if !ok {
		return "", false
	}
	return bestQuality(jsonwalk.CollectStrings(root, isVideoURL))
}

func videoFromOpenGraph(p *page) (string, bool) {
	v := p.metaContent(ogVideoSecure, ogVideo)
	return v, v != ""
}

func videoFromInlineScripts(p *page) (string, bool) {
	var links []string
	p.doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		content := script.Text()
		if content == "" {
			return
		}
		links = append(links, scriptVideoExpr.FindAllString(content, -1)...)
	})
	return bestQuality(links)
}
