package longdo

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/paradict-backend/internal/domain"
)

const resultTableClass = "result-table"

// Cross-reference tails that are cut from a definition.
var crossReferenceMarkers = []string{", See also:", ", Syn."}

var (
	latinRunRe = regexp.MustCompile(`[a-zA-Z]\w+`)
	thaiRunRe  = regexp.MustCompile(`[\x{0E01}-\x{0E4F}]+`)
)

// ParseDictionaryPage extracts the definitions of word from a mobile.php page.
// A page without matching rows yields an empty, non-nil slice.
func ParseDictionaryPage(page []byte, word string) ([]domain.DictionaryEntry, error) {
	doc, err := html.Parse(bytes.NewReader(preClean(page)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrParse, err)
	}

	word = strings.TrimSpace(word)
	entries := []domain.DictionaryEntry{}
	for _, t := range resultTables(doc) {
		rows := matchingRows(tableRows(t.node), word)
		if len(rows) == 0 {
			continue
		}
		entries = append(entries, domain.DictionaryEntry{
			Dict:    t.dict,
			Results: formatResults(t.dict, rows),
		})
	}
	return entries, nil
}

// preClean removes tabs and replaces each "  " with " " in a single
// non-overlapping pass, so "    " becomes "  ".
func preClean(page []byte) []byte {
	page = bytes.ReplaceAll(page, []byte("\t"), nil)
	return bytes.ReplaceAll(page, []byte("  "), []byte(" "))
}

type resultTable struct {
	dict string
	node *html.Node
}

// resultTables is the only place that knows the page layout: result tables
// are direct children of <body>, and the element right before each one holds
// the dictionary name. Layout changes upstream should only touch this function.
func resultTables(doc *html.Node) []resultTable {
	body := findElement(doc, atom.Body)
	if body == nil {
		return nil
	}

	var (
		tables []resultTable
		prev   *html.Node
	)
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Table && hasClass(c, resultTableClass) {
			var name string
			if prev != nil {
				name = textContent(prev)
			}
			tables = append(tables, resultTable{dict: name, node: c})
		}
		prev = c
	}
	return tables
}

// tableRows returns the cell texts of every row of table, not descending into nested tables.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, rowCells(c))
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.DataAtom == atom.Tr {
					rows = append(rows, rowCells(r))
				}
			}
		}
	}
	return rows
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

// matchingRows keeps rows headed by word (case-insensitive) that pass isAllowedLanguage.
func matchingRows(rows [][]string, word string) [][]string {
	var out [][]string
	for _, row := range rows {
		if len(row) < 2 || !strings.EqualFold(row[0], word) {
			continue
		}
		if !isAllowedLanguage(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// isAllowedLanguage accepts English head words with Thai definitions only.
// Thai-to-English rows are never returned.
func isAllowedLanguage(row []string) bool {
	if len(row) < 2 {
		return false
	}
	return latinRunRe.MatchString(row[0]) && thaiRunRe.MatchString(row[1])
}

// stripCrossReference drops a trailing ", See also: ..." or ", Syn. ..." tail.
func stripCrossReference(definition string) string {
	cut := len(definition)
	for _, marker := range crossReferenceMarkers {
		if i := strings.Index(definition, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(definition[:cut])
}

func formatResults(dict string, rows [][]string) []string {
	results := make([]string, 0, len(rows))
	for _, row := range rows {
		definition := stripCrossReference(row[1])
		if isHopeDictionary(dict) {
			results = append(results, segmentHope(definition)...)
			continue
		}
		results = append(results, definition)
	}
	return results
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), class) {
			return true
		}
	}
	return false
}

// textContent concatenates the text nodes under n, NFC-composed and trimmed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(norm.NFC.String(b.String()))
}
