package docbundle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultAggregateTitle is the top-level heading used when no title is
// configured.
const DefaultAggregateTitle = "Aggregated Documentation"

// Aggregate builds the combined output document.
type Aggregate struct {
	// Title is the top-level heading of the output document.
	// Defaults to DefaultAggregateTitle.
	Title string

	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Build renders documents into a single markdown document: a header, a
// numbered table of contents linking to in-document anchors, and each
// document's content under a heading matching its TOC entry. Documents
// are ordered by Position regardless of input order. Zero documents
// render a header and an empty TOC.
func (a Aggregate) Build(docs []*Document) string {
	ordered := make([]*Document, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	title := a.Title
	if title == "" {
		title = DefaultAggregateTitle
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	// Assign anchors up front so TOC entries and section headings agree.
	anchors := make([]string, len(ordered))
	anchorCounts := make(map[string]int)
	for i, doc := range ordered {
		anchor := Anchor(doc.Title)
		if count, exists := anchorCounts[anchor]; exists {
			anchorCounts[anchor] = count + 1
			anchor = anchor + "-" + strconv.Itoa(count)
		} else {
			anchorCounts[anchor] = 1
		}
		anchors[i] = anchor
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*This file contains aggregated documentation from %d markdown files.*\n\n", len(ordered))
	fmt.Fprintf(&b, "*Generated on: %s*\n\n", now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Table of Contents\n\n")
	for i, doc := range ordered {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", i+1, doc.Title, anchors[i])
	}
	b.WriteString("\n---\n\n")

	for _, doc := range ordered {
		fmt.Fprintf(&b, "## %s\n\n", doc.Title)
		fmt.Fprintf(&b, "*Source: [%s](%s)*\n\n", doc.URL, doc.URL)
		b.WriteString(doc.Content)
		b.WriteString("\n\n---\n\n")
	}

	return b.String()
}

// Anchor derives a URL-safe anchor from a title. Converts to
// lowercase, replaces spaces with hyphens, removes special chars.
func Anchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
