package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// breakSeparators are tried in order when looking for a clean cut point.
var breakSeparators = []string{". ", "? ", "! ", "; ", ", ", " "}

// blockElements are separated by a space when flattened to text.
var blockElements = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "tr": true, "td": true, "th": true, "hr": true,
}

// StripTags flattens rich-text HTML to a single line of plain text with
// entities decoded and whitespace collapsed.
func StripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.Join(strings.Fields(text), " ")
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return strings.TrimSpace(text)
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		}
		if blockElements[n.Data] {
			sb.WriteByte(' ')
			defer sb.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// Truncate strips tags and shortens text to at most maxLen runes plus an
// ellipsis, cutting at the last separator that keeps at least half the text.
// Punctuation left at the cut is dropped before the ellipsis.
func Truncate(text string, maxLen int) string {
	stripped := StripTags(text)
	if maxLen <= 0 || utf8.RuneCountInString(stripped) <= maxLen {
		return stripped
	}

	runes := []rune(stripped)
	cut := string(runes[:maxLen])
	for _, sep := range breakSeparators {
		if idx := strings.LastIndex(cut, sep); idx > 0 && utf8.RuneCountInString(cut[:idx]) >= maxLen/2 {
			cut = cut[:idx]
			break
		}
	}
	return strings.TrimRight(strings.TrimSpace(cut), ".,;:!?") + "..."
}

// EnsureScheme prefixes bare host URLs with https:// and maps empty to "#".
func EnsureScheme(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || url == "#" {
		return "#"
	}
	if !strings.HasPrefix(url, "http") {
		return "https://" + url
	}
	return url
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
