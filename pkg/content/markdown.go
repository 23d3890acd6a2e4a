package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	newlinesRe      = regexp.MustCompile(`\n{2,}`)
	spacesRe        = regexp.MustCompile(`[ \t\r\f\v]+`)
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
)

// CollapseNewlines replaces every run of two or more newlines with a single newline
func CollapseNewlines(s string) string {
	return newlinesRe.ReplaceAllString(s, "\n")
}

// ToMarkdown renders an HTML fragment as markdown-like text. Headings, lists, links,
// emphasis, code and quotes keep their markdown markers, everything else becomes plain text.
func ToMarkdown(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}
	r := &mdRenderer{}
	r.walk(doc)
	return strings.TrimSpace(trailingSpaceRe.ReplaceAllString(r.buf.String(), "\n"))
}

type mdRenderer struct {
	buf strings.Builder
	pre int // depth of <pre> elements, whitespace is kept verbatim inside
}

func (r *mdRenderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
	default:
		r.children(n)
		return
	}

	switch n.Data {
	case "script", "style", "noscript", "head", "template":
		return
	case "br":
		r.buf.WriteString("\n")
	case "hr":
		r.block()
		r.buf.WriteString("---\n\n")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.block()
		r.buf.WriteString(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		r.children(n)
		r.buf.WriteString("\n\n")
	case "p", "div", "section", "article", "figure", "table", "header", "footer", "main", "aside":
		r.block()
		r.children(n)
		r.buf.WriteString("\n\n")
	case "ul", "ol":
		r.block()
		r.children(n)
		r.buf.WriteString("\n")
	case "li":
		r.line()
		r.buf.WriteString("* ")
		r.children(n)
		r.buf.WriteString("\n")
	case "tr":
		r.line()
		r.children(n)
		r.buf.WriteString("\n")
	case "td", "th":
		r.children(n)
		r.buf.WriteString(" ")
	case "blockquote":
		inner := strings.TrimSpace(r.sub(n))
		if inner == "" {
			return
		}
		r.block()
		for _, l := range strings.Split(inner, "\n") {
			r.buf.WriteString("> " + l + "\n")
		}
		r.buf.WriteString("\n")
	case "a":
		text := strings.TrimSpace(r.sub(n))
		href := attr(n, "href")
		switch {
		case text == "":
		case href == "" || href == text:
			r.buf.WriteString(text)
		default:
			r.buf.WriteString("[" + text + "](" + href + ")")
		}
	case "strong", "b":
		r.wrap(n, "**")
	case "em", "i":
		r.wrap(n, "*")
	case "code":
		if r.pre > 0 {
			r.children(n)
			return
		}
		r.wrap(n, "`")
	case "pre":
		r.block()
		r.buf.WriteString("```\n")
		r.pre++
		r.children(n)
		r.pre--
		r.line()
		r.buf.WriteString("```\n\n")
	case "img":
		if alt := attr(n, "alt"); alt != "" {
			r.buf.WriteString("![" + alt + "](" + attr(n, "src") + ")")
		}
	default:
		r.children(n)
	}
}

func (r *mdRenderer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

// sub renders the children of n into a separate buffer
func (r *mdRenderer) sub(n *html.Node) string {
	s := &mdRenderer{pre: r.pre}
	s.children(n)
	return s.buf.String()
}

func (r *mdRenderer) wrap(n *html.Node, marker string) {
	inner := strings.TrimSpace(r.sub(n))
	if inner == "" {
		return
	}
	r.buf.WriteString(marker + inner + marker)
}

func (r *mdRenderer) text(s string) {
	if r.pre > 0 {
		r.buf.WriteString(s)
		return
	}
	s = spacesRe.ReplaceAllString(strings.ReplaceAll(s, "\n", " "), " ")
	if r.atLineStart() || strings.HasSuffix(r.buf.String(), " ") {
		s = strings.TrimLeft(s, " ")
	}
	r.buf.WriteString(s)
}

// line starts a new line unless already at one
func (r *mdRenderer) line() {
	if !r.atLineStart() {
		r.buf.WriteString("\n")
	}
}

// block separates a block element from preceding text with an empty line
func (r *mdRenderer) block() {
	if r.buf.Len() == 0 {
		return
	}
	s := r.buf.String()
	switch {
	case strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		r.buf.WriteString("\n")
	default:
		r.buf.WriteString("\n\n")
	}
}

func (r *mdRenderer) atLineStart() bool {
	return r.buf.Len() == 0 || strings.HasSuffix(r.buf.String(), "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
