// Package importer converts browser bookmark files to and from the
// store's create inputs. Two input formats are supported: the Netscape
// bookmark HTML every browser can export, and bm-style JSON files with
// a top-level "bookmarks" array.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/mkoval/markd/internal/domain"
)

// Parse detects the format of data and converts it. JSON is recognized
// by a valid document with a "bookmarks" array; everything else is
// treated as Netscape HTML.
func Parse(data []byte) ([]domain.CreateInput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed) {
		return ParseJSON(trimmed)
	}
	return ParseNetscape(bytes.NewReader(data))
}

// ParseNetscape walks a Netscape bookmark file in document order: an
// H3 heading names the folder (mapped to category) for the links that
// follow it. Entries with an empty href or title are skipped.
func ParseNetscape(r io.Reader) ([]domain.CreateInput, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bookmark html: %w", err)
	}

	var (
		inputs []domain.CreateInput
		folder string
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h3":
				folder = strings.TrimSpace(nodeText(n))
			case "a":
				href := attr(n, "href")
				title := strings.TrimSpace(nodeText(n))
				if href != "" && title != "" {
					input := domain.CreateInput{
						Title:    title,
						URL:      href,
						Category: folder,
						Tags:     splitTags(attr(n, "tags")),
					}
					inputs = append(inputs, input)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return inputs, nil
}

// ParseJSON reads a {"bookmarks":[...]} file. Each entry needs url and
// title; description maps to notes and category/tags carry over.
func ParseJSON(data []byte) ([]domain.CreateInput, error) {
	entries := gjson.GetBytes(data, "bookmarks").Array()
	if len(entries) == 0 {
		return nil, fmt.Errorf("no bookmarks found in file")
	}

	inputs := make([]domain.CreateInput, 0, len(entries))
	for _, item := range entries {
		url := item.Get("url").String()
		title := item.Get("title").String()
		if url == "" || title == "" {
			continue
		}

		input := domain.CreateInput{
			Title:    title,
			URL:      url,
			Category: item.Get("category").String(),
			Notes:    item.Get("description").String(),
		}
		for _, tag := range item.Get("tags").Array() {
			input.Tags = append(input.Tags, tag.String())
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
