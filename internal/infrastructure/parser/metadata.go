package parser

import (
	"regexp"
	"strings"

	"PinResolver/internal/domain"
)

const (
	ogTitle            = `meta[property="og:title"]`
	twitterTitle       = `meta[name="twitter:title"]`
	ogImage            = `meta[property="og:image"]`
	twitterImage       = `meta[name="twitter:image"]`
	ogDescription      = `meta[property="og:description"]`
	twitterDescription = `meta[name="twitter:description"]`
	authorMeta         = `meta[name="author"]`
	pinAuthorMeta      = `meta[property="mrc.author_name"]`
)

// hashtagExpr matches '#' followed by word characters or any non-ASCII letter.
var hashtagExpr = regexp.MustCompile(`#[\w\x{0080}-\x{10FFFF}]+`)

func metadataFromPage(p *page) domain.Metadata {
	title := p.metaContent(ogTitle, twitterTitle)
	if title == "" {
		title = p.doc.Find("title").Text()
	}
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultTitle
	}

	author := p.metaContent(authorMeta, pinAuthorMeta)
	if author == "" {
		author = domain.UnknownAuthor
	}

	description := p.metaContent(ogDescription, twitterDescription)

	return domain.Metadata{
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		Description: description,
		Style:       Hashtags(description, title),
		Thumbnail:   p.metaContent(ogImage, twitterImage),
	}
}

// Hashtags scans the texts in order and joins the distinct hashtags with single
// spaces, keeping the position of each tag's first occurrence.
func Hashtags(texts ...string) string {
	seen := map[string]struct{}{}
	var tags []string
	for _, text := range texts {
		for _, tag := range hashtagExpr.FindAllString(text, -1) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, " ")
}
