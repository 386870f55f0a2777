package docbundle

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// markdownExtensions lists the file extensions treated as markdown.
var markdownExtensions = []string{".md", ".markdown"}

// linkTokenRe matches markdown-style links (capturing the target) or
// bare URL tokens, in document order.
var linkTokenRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)|(https?://[^\s)\]]+)`)

// Link represents a single markdown resource referenced by the index.
// Position records the order in which the link first appeared.
// Links are immutable once parsed.
type Link struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// Filename derives a filesystem-safe file name from the link's URL
// path. Characters unsafe for file names are replaced with underscores
// and a markdown extension is guaranteed.
func (l Link) Filename() string {
	base := l.URL
	if u, err := url.Parse(l.URL); err == nil {
		base = u.Path
	}
	base = path.Base(base)
	if base == "." || base == "/" || base == "" {
		base = "index.md"
	}

	var sb strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	name := sb.String()
	if !hasMarkdownExtension(name) {
		name += ".md"
	}
	return name
}

// Title derives a display title from the file name: the extension is
// dropped, hyphens and underscores become spaces, words are title-cased.
func (l Link) Title() string {
	name := l.Filename()
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCase(name)
}

// ParseLinks extracts markdown file links from index text. Both
// markdown-style links and bare URL tokens are recognized; relative
// targets are resolved against base. URLs that do not end in a
// markdown extension are filtered out silently. Duplicates are removed
// preserving first-seen order.
func ParseLinks(index string, base *url.URL) []Link {
	var links []Link
	seen := make(map[string]bool)

	add := func(target string) {
		u, err := url.Parse(strings.TrimSpace(target))
		if err != nil {
			return
		}
		if base != nil {
			u = base.ResolveReference(u)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		if !hasMarkdownExtension(u.Path) {
			return
		}
		abs := u.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, Link{URL: abs, Position: len(links)})
	}

	for _, m := range linkTokenRe.FindAllStringSubmatch(index, -1) {
		target := m[1]
		if target == "" {
			// Bare URL token; strip trailing punctuation.
			target = strings.TrimRight(m[2], ".,;:")
		}
		add(target)
	}

	return links
}

// IsMarkdownURL reports whether the URL path ends in a markdown
// extension.
func IsMarkdownURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return hasMarkdownExtension(u.Path)
}

func hasMarkdownExtension(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
