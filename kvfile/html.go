package kvfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/irazza/btree"
	"golang.org/x/net/html"
)

// LoadHTMLTable extracts key-value pairs from the rows of an HTML
// table and returns them as an ordered map. The first two cells of
// every row become key and value, so the result resembles scraping
//
//	document.querySelector("table").rows
//
// in JavaScript (except that header cells are treated like data
// cells). Rows with fewer than two cells or with an empty key are
// skipped, or reported as errors in strict mode. Progress options are
// accepted but ignored, table extraction is always synchronous.
func LoadHTMLTable(input io.Reader, opts ...Option) (*btree.Map[string, string], error) {
	ld, err := newLoader(0, opts...)
	if err != nil {
		return nil, err
	}
	defer ld.cast.Close()
	doc, err := html.Parse(input)
	if err != nil {
		return nil, err
	}
	table := tableNode(doc)
	if table == nil {
		return nil, fmt.Errorf("kvfile: document contains no table")
	}
	m, err := btree.New[string, string](btree.Config[string]{
		Order:   ld.order,
		Compare: btree.Ordered[string](),
	})
	if err != nil {
		return nil, err
	}
	for i, row := range collectRows(table, nil) {
		if len(row) < 2 || row[0] == "" {
			if ld.strict {
				return nil, fmt.Errorf("row %d: %w", i+1, ErrBadSyntax)
			}
			continue
		}
		if err := m.Put(row[0], row[1]); err != nil {
			return nil, err
		}
	}
	tracer().P("run", ld.runID).Infof("loaded %d pairs from table", m.Len())
	return m, nil
}

// tableNode finds the first table element in the document tree.
func tableNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := tableNode(c); t != nil {
			return t
		}
	}
	return nil
}

// collectRows gathers the cell texts of every table row below n. Rows
// of tables nested inside a cell are not collected separately, their
// content ends up in the enclosing cell's text.
func collectRows(n *html.Node, rows [][]string) [][]string {
	if n.Type == html.ElementNode && n.Data == "tr" {
		var cells []string
		collectCells(n, &cells)
		return append(rows, cells)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rows = collectRows(c, rows)
	}
	return rows
}

// collectCells appends the trimmed text of every td or th element
// below n.
func collectCells(n *html.Node, cells *[]string) {
	if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
		*cells = append(*cells, strings.TrimSpace(innerText(n)))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCells(c, cells)
	}
}

// innerText concatenates the textual content of n and all its
// descendents.
func innerText(n *html.Node) string {
	var sb strings.Builder
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(innerText(c))
	}
	return sb.String()
}
