package variables

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// ApplySampleValues walks the document's text nodes and replaces any node
// whose trimmed text exactly equals one of the sample values with the
// corresponding {{key}} placeholder. At most one replacement happens per
// text node; surrounding whitespace is preserved.
func ApplySampleValues(htmlStr string, vars domain.VariableMap) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", domain.VariableError("failed to parse HTML", err)
	}

	substituteTextNodes(doc, vars)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", domain.VariableError("failed to render HTML", err)
	}
	return sb.String(), nil
}

func substituteTextNodes(n *html.Node, vars domain.VariableMap) {
	if n.Type == html.TextNode {
		trimmed := strings.TrimSpace(n.Data)
		if trimmed != "" {
			for key, value := range vars {
				if value == trimmed {
					n.Data = strings.Replace(n.Data, trimmed, "{{"+key+"}}", 1)
					break
				}
			}
		}
	}

	// Skip non-content subtrees
	if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script") {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		substituteTextNodes(c, vars)
	}
}
