package importer

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/mkoval/markd/internal/domain"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// ExportNetscape writes bookmarks as a Netscape bookmark file,
// grouped by category with uncategorized entries last. Categories are
// emitted in sorted order so the output is stable.
func ExportNetscape(w io.Writer, bookmarks []*domain.Bookmark) error {
	byCategory := make(map[string][]*domain.Bookmark)
	var uncategorized []*domain.Bookmark
	for _, bm := range bookmarks {
		if bm.Category == "" {
			uncategorized = append(uncategorized, bm)
			continue
		}
		byCategory[bm.Category] = append(byCategory[bm.Category], bm)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString(netscapeHeader)

	for _, category := range categories {
		fmt.Fprintf(&sb, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
		sb.WriteString("    <DL><p>\n")
		for _, bm := range byCategory[category] {
			writeEntry(&sb, "        ", bm)
		}
		sb.WriteString("    </DL><p>\n")
	}

	for _, bm := range uncategorized {
		writeEntry(&sb, "    ", bm)
	}

	sb.WriteString("</DL><p>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEntry(sb *strings.Builder, indent string, bm *domain.Bookmark) {
	tags := ""
	if len(bm.Tags) > 0 {
		tags = fmt.Sprintf(" TAGS=%q", strings.Join(bm.Tags, ","))
	}
	fmt.Fprintf(sb, "%s<DT><A HREF=%q%s>%s</A>\n",
		indent, bm.URL, tags, html.EscapeString(bm.Title))
}
