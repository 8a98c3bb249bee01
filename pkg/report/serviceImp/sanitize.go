package serviceImp

import (
	"bytes"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// The evaluation prompt asks for these tags; anything else the model sneaks
// in gets unwrapped to plain text.
var allowedTags = map[string]bool{
	"p": true, "ul": true, "ol": true, "li": true,
	"strong": true, "em": true, "b": true, "i": true, "br": true,
}

// SanitizeHTML strips the model's evaluation down to the allowed tag set:
// script/style subtrees are dropped, all attributes removed, and disallowed
// elements are replaced by their children.
func SanitizeHTML(in string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in))
	if err != nil {
		return "<p>" + html.EscapeString(in) + "</p>"
	}
	doc.Find("script, style").Remove()

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return "<p>" + html.EscapeString(in) + "</p>"
	}
	scrub(body.Nodes[0])

	out, err := body.Html()
	if err != nil {
		return "<p>" + html.EscapeString(in) + "</p>"
	}
	return strings.TrimSpace(out)
}

// scrub walks depth-first so an unwrapped element's children get visited in
// their new position.
func scrub(n *xhtml.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == xhtml.ElementNode {
			if !allowedTags[child.Data] {
				next = unwrap(child)
			} else {
				child.Attr = nil
				scrub(child)
			}
		}
		child = next
	}
}

// unwrap hoists the node's children into its place and returns the first of
// them so the caller rescans from there.
func unwrap(n *xhtml.Node) *xhtml.Node {
	parent := n.Parent
	first := n.FirstChild
	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	next := first
	if next == nil {
		next = n.NextSibling
	}
	parent.RemoveChild(n)
	return next
}

// HTMLToText flattens sanitized evaluation HTML for the spreadsheet export.
func HTMLToText(in string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in))
	if err != nil {
		return in
	}
	var buf bytes.Buffer
	doc.Find("p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	})
	if buf.Len() == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.TrimSpace(buf.String())
}
