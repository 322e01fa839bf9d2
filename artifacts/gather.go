// Package artifacts builds the page artifacts the audits need from a raw
// HTML document, standing in for a browser-based host when only markup is
// available.
package artifacts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/seo-optimizer/contentquality/analyzer"
	"golang.org/x/net/html"
)

// ErrEmptyDocument is returned for blank input.
var ErrEmptyDocument = errors.New("empty HTML document")

// Without layout we cannot measure an image, so one without a usable size is
// assumed to be rendered just above the tracking-pixel cutoff.
const unmeasuredSize = 2

// Gather parses rawHTML and collects title, meta tags, headings, images and
// the main content markup.
func Gather(rawHTML, pageURL string) (analyzer.PageArtifacts, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return analyzer.PageArtifacts{}, ErrEmptyDocument
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return analyzer.PageArtifacts{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	mainContent, err := mainContentMarkup(doc)
	if err != nil {
		return analyzer.PageArtifacts{}, err
	}

	return analyzer.PageArtifacts{
		URL:          pageURL,
		RawHTML:      rawHTML,
		MainContent:  mainContent,
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		MetaElements: metaElements(doc),
		Headings:     headingElements(doc),
		Images:       imageElements(doc),
	}, nil
}

func metaElements(doc *goquery.Document) []analyzer.MetaElement {
	metas := make([]analyzer.MetaElement, 0)
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		metas = append(metas, analyzer.MetaElement{Name: name, Content: content})
	})
	return metas
}

// headingElements returns h1-h6 in document order.
func headingElements(doc *goquery.Document) []analyzer.HeadingElement {
	headings := make([]analyzer.HeadingElement, 0)
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		tag := strings.ToUpper(goquery.NodeName(s))
		level, _ := strconv.Atoi(tag[1:])
		headings = append(headings, analyzer.HeadingElement{
			TagName: tag,
			Level:   level,
			Text:    strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return headings
}

func imageElements(doc *goquery.Document) []analyzer.ImageElement {
	images := make([]analyzer.ImageElement, 0)
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		width, height := imageSize(s)
		images = append(images, analyzer.ImageElement{
			Src:           src,
			Width:         width,
			Height:        height,
			IsInShadowDOM: s.Closest("template[shadowrootmode], template[shadowroot]").Length() > 0,
		})
	})
	return images
}

// imageSize reads the width and height attributes, then inline style.
func imageSize(s *goquery.Selection) (float64, float64) {
	width, height := -1.0, -1.0

	if v, ok := s.Attr("width"); ok {
		width = parseDimension(v)
	}
	if v, ok := s.Attr("height"); ok {
		height = parseDimension(v)
	}

	if style, ok := s.Attr("style"); ok {
		for _, declaration := range strings.Split(style, ";") {
			property, value, found := strings.Cut(declaration, ":")
			if !found {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(property)) {
			case "width":
				width = parseDimension(value)
			case "height":
				height = parseDimension(value)
			}
		}
	}

	if width < 0 {
		width = unmeasuredSize
	}
	if height < 0 {
		height = unmeasuredSize
	}
	return width, height
}

// parseDimension returns -1 for values that are not plain pixel counts.
func parseDimension(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(v)), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return -1
	}
	return f
}

// mainContentMarkup picks the first semantic container with text in it:
// <main>, then <article>, then [role=main], and falls back to <body>.
func mainContentMarkup(doc *goquery.Document) (string, error) {
	for _, selector := range []string{"main", "article", "[role='main']", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			return "", fmt.Errorf("failed to render %s: %w", selector, err)
		}
		return markup, nil
	}
	return "", nil
}
