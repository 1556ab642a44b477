package schema

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// parseMicrodata извлекает microdata объекты (itemscope/itemtype/itemprop)
// из дерева документа. Элементы с itemscope без itemprop — самостоятельные
// объекты верхнего уровня, с itemprop — вложенные значения свойств.
func parseMicrodata(doc *html.Node, base *url.URL) []*Thing {
	var things []*Thing
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, scoped := attrValue(n, "itemscope"); scoped {
				if _, isProp := attrValue(n, "itemprop"); !isProp {
					things = append(things, microdataThing(n, base))
					// Вложенные itemscope собираются внутри microdataThing
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return things
}

// microdataThing строит Thing из элемента с itemscope
func microdataThing(scope *html.Node, base *url.URL) *Thing {
	t := NewThing(microdataType(scope))
	if id, ok := attrValue(scope, "itemid"); ok {
		t.ID = strings.TrimSpace(id)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				walk(c)
				continue
			}

			props, hasProp := attrValue(c, "itemprop")
			_, scoped := attrValue(c, "itemscope")

			if hasProp {
				if scoped {
					child := microdataThing(c, base)
					for _, name := range strings.Fields(props) {
						t.AddThing(name, child)
					}
					continue
				}
				value := microdataValue(c, base)
				for _, name := range strings.Fields(props) {
					t.AddString(name, value)
				}
				walk(c)
				continue
			}

			if scoped {
				// Чужой itemscope без itemprop: не наше свойство, не углубляемся
				continue
			}
			walk(c)
		}
	}
	walk(scope)

	return t
}

// microdataType извлекает имя типа из itemtype (URL словаря schema.org)
func microdataType(n *html.Node) string {
	raw, _ := attrValue(n, "itemtype")
	for _, field := range strings.Fields(raw) {
		field = strings.TrimSuffix(field, "/")
		if idx := strings.LastIndex(field, "/"); idx >= 0 {
			field = field[idx+1:]
		}
		if field != "" {
			return field
		}
	}
	return ""
}

// microdataValue извлекает строковое значение свойства по правилам microdata:
// значение зависит от тега элемента, ссылки разрешаются против базового URL
func microdataValue(n *html.Node, base *url.URL) string {
	switch n.Data {
	case "meta":
		v, _ := attrValue(n, "content")
		return strings.TrimSpace(v)
	case "audio", "embed", "iframe", "img", "source", "track", "video":
		v, _ := attrValue(n, "src")
		return resolveURL(base, v)
	case "a", "area", "link":
		v, _ := attrValue(n, "href")
		return resolveURL(base, v)
	case "object":
		v, _ := attrValue(n, "data")
		return resolveURL(base, v)
	case "data", "meter":
		v, _ := attrValue(n, "value")
		return strings.TrimSpace(v)
	case "time":
		if v, ok := attrValue(n, "datetime"); ok {
			return strings.TrimSpace(v)
		}
	}
	// content= встречается и на обычных тегах (невалидно, но распространено)
	if v, ok := attrValue(n, "content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(textContent(n))
}
