package proxy

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"PinResolver/internal/domain"
)

const (
	titleFragmentLen = 20
	suffixLen        = 5
	suffixAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Words is the vocabulary one random word of every filename is drawn from.
var Words = []string{"creative", "inspiration", "aesthetic", "vibe", "trend", "design", "art", "media", "content", "classic"}

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	repeatedUnders = regexp.MustCompile(`_{2,}`)
)

// Namer generates download filenames. The zero value uses math/rand/v2's
// global source and is safe for concurrent use.
type Namer struct {
	// IntN returns a value in [0, n). Tests replace it for determinism.
	IntN func(n int) int
}

func (n Namer) intN(max int) int {
	if n.IntN != nil {
		return n.IntN(max)
	}
	return rand.IntN(max)
}

// Name builds "[author_][title_]<word>_<suffix>", lower-cased with runs of
// underscores collapsed. The extension is not included.
func (n Namer) Name(title, author string) string {
	var b strings.Builder
	if author = strings.TrimSpace(author); author != "" && author != domain.UnknownAuthor {
		b.WriteString(sanitize(author))
		b.WriteByte('_')
	}
	if title = strings.TrimSpace(title); title != "" && title != domain.DefaultTitle && title != domain.LegacyTitle {
		b.WriteString(sanitize(truncate(title, titleFragmentLen)))
		b.WriteByte('_')
	}

	b.WriteString(Words[n.intN(len(Words))])
	b.WriteByte('_')
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(suffixAlphabet[n.intN(len(suffixAlphabet))])
	}

	name := repeatedUnders.ReplaceAllString(b.String(), "_")
	return strings.ToLower(strings.Trim(name, "_"))
}

// Filename appends the extension matching the media type.
func (n Namer) Filename(title, author string, kind domain.MediaType) string {
	return n.Name(title, author) + "." + Extension(kind)
}

// Extension maps a media type to the file extension used for downloads.
func Extension(kind domain.MediaType) string {
	if kind == domain.MediaVideo {
		return "mp4"
	}
	return "jpg"
}

func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
