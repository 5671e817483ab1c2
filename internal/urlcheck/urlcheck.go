// Package urlcheck decides which hosts the service is willing to fetch from.
package urlcheck

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"

	"PinResolver/internal/ports"
)

// DefaultHosts are the substrings a pin page hostname must contain.
var DefaultHosts = []string{"pinterest.com", "pin.it"}

// Checker matches a URL's scheme and hostname against an allow-list.
//
// With only substrings configured the hostname must contain one of them,
// which also admits hosts such as pinterest.com.evil.com. Glob patterns match
// the whole hostname label by label and take precedence when present.
type Checker struct {
	scheme     string
	substrings []string
	patterns   []glob.Glob
}

var _ ports.URLChecker = (*Checker)(nil)

// Option customises a Checker.
type Option func(*Checker) error

// WithScheme requires an exact URL scheme, e.g. "https".
func WithScheme(scheme string) Option {
	return func(c *Checker) error {
		c.scheme = strings.ToLower(scheme)
		return nil
	}
}

// WithSubstrings admits hostnames containing any of subs.
func WithSubstrings(subs ...string) Option {
	return func(c *Checker) error {
		for _, s := range subs {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				c.substrings = append(c.substrings, s)
			}
		}
		return nil
	}
}

// WithPatterns admits hostnames matching any glob, e.g. "*.pinimg.com".
func WithPatterns(patterns ...string) Option {
	return func(c *Checker) error {
		for _, p := range patterns {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			g, err := glob.Compile(p, '.')
			if err != nil {
				return fmt.Errorf("compile host pattern %q: %w", p, err)
			}
			c.patterns = append(c.patterns, g)
		}
		return nil
	}
}

// New builds a Checker. A Checker without substrings or patterns admits any
// http(s) host.
func New(opts ...Option) (*Checker, error) {
	c := &Checker{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Allowed reports whether rawURL may be fetched. It never panics.
func (c *Checker) Allowed(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if c.scheme != "" {
		if scheme != c.scheme {
			return false
		}
	} else if scheme != "http" && scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if len(c.patterns) > 0 {
		for _, g := range c.patterns {
			if g.Match(host) {
				return true
			}
		}
		return false
	}

	if len(c.substrings) == 0 {
		return true
	}
	for _, s := range c.substrings {
		if strings.Contains(host, s) {
			return true
		}
	}
	return false
}

var defaultChecker = &Checker{scheme: "https", substrings: DefaultHosts}

// Validate applies the default pin page rule: https and a hostname containing
// one of DefaultHosts.
func Validate(rawURL string) bool {
	return defaultChecker.Allowed(rawURL)
}
