package schema

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Reader парсер structured data (schema.org) из HTML документов.
// Поддерживаются JSON-LD блоки и HTML microdata.
type Reader struct{}

// NewReader создает новый парсер structured data
func NewReader() *Reader {
	return &Reader{}
}

// Parse извлекает все объекты structured data из HTML документа.
// Никогда не возвращает ошибку: нечитаемые фрагменты считаются отсутствующими
// данными, возвращается всё, что удалось разобрать (возможно, пустой список).
func (r *Reader) Parse(htmlData []byte, baseURL string) []*Thing {
	doc, err := html.Parse(bytes.NewReader(htmlData))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var things []*Thing

	// JSON-LD: <script type="application/ld+json">
	for _, script := range findJSONLDScripts(doc) {
		things = append(things, parseJSONLD(textContent(script))...)
	}

	// Microdata: itemscope/itemtype/itemprop
	things = append(things, parseMicrodata(doc, base)...)

	return things
}

// findJSONLDScripts находит все JSON-LD скрипты в документе
func findJSONLDScripts(doc *html.Node) []*html.Node {
	var scripts []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			if typ, ok := attrValue(n, "type"); ok && strings.EqualFold(strings.TrimSpace(typ), "application/ld+json") {
				scripts = append(scripts, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return scripts
}

// attrValue возвращает значение атрибута узла
func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// textContent возвращает текстовое содержимое узла вместе с потомками
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
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

// resolveURL разрешает относительную ссылку против базового URL документа
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
