// Package ssr post-processes rendered templates so that custom elements used
// by the quiz UI degrade gracefully without JavaScript.
package ssr

import (
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"io"
)

// customElements maps the quiz UI custom elements to the classes their
// server-rendered fallbacks need.
var customElements = map[string]string{
	"likert-scale":   "likert-scale",
	"axis-meter":     "axis-meter",
	"button-primary": "button-primary",
}

// ReplaceCustomElements expands custom elements and their `as` attribute
// aliases in the rendered HTML fragment.
func ReplaceCustomElements(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return err
	}

	for element, class := range customElements {
		doc.Find(element).Each(func(_ int, s *goquery.Selection) {
			s.AddClass(class)
		})
		doc.Find(fmt.Sprintf(`[as=%q]`, element)).Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr("as")
			s.AddClass(class)
			nodes := s.Nodes
			nodes[0].Data = element
		})
	}

	// Recover the gohtml templating from the parsed document.
	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			if err = html.Render(writer, c); err != nil {
				return fmt.Errorf("render html: %w", err)
			}
		}
	}
	return nil
}
