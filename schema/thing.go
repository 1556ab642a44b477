package schema

import "strings"

// Типы schema.org, которые распознаёт парсер. Остальные типы сохраняются
// как есть, но специальной обработки для них нет.
const (
	TypeProduct           = "Product"
	TypeOffer             = "Offer"
	TypeAggregateOffer    = "AggregateOffer"
	TypeOrganization      = "Organization"
	TypeBrand             = "Brand"
	TypePerson            = "Person"
	TypeWebSite           = "WebSite"
	TypeWebPage           = "WebPage"
	TypeBreadcrumbList    = "BreadcrumbList"
	TypeListItem          = "ListItem"
	TypeQuantitativeValue = "QuantitativeValue"
	TypeImageObject       = "ImageObject"
)

// Value значение свойства schema.org: либо строка, либо вложенный объект.
// Ровно одно из полей заполнено.
type Value struct {
	Str   string
	Thing *Thing
}

// IsThing проверяет, что значение является вложенным объектом
func (v Value) IsThing() bool {
	return v.Thing != nil
}

// Thing объект structured data с типом и упорядоченными многозначными свойствами.
// Источники нередко объявляют одно и то же свойство несколько раз (один раз
// сломанным значением), поэтому все значения сохраняются в порядке объявления.
type Thing struct {
	Type  string
	ID    string
	props map[string][]Value
	keys  []string
}

// NewThing создает новый объект заданного типа
func NewThing(typ string) *Thing {
	return &Thing{
		Type:  typ,
		props: make(map[string][]Value),
	}
}

// Add добавляет значение свойства, сохраняя порядок объявления
func (t *Thing) Add(name string, v Value) {
	if t == nil || name == "" {
		return
	}
	if _, exists := t.props[name]; !exists {
		t.keys = append(t.keys, name)
	}
	t.props[name] = append(t.props[name], v)
}

// AddString добавляет строковое значение свойства
func (t *Thing) AddString(name, s string) {
	t.Add(name, Value{Str: s})
}

// AddThing добавляет вложенный объект как значение свойства
func (t *Thing) AddThing(name string, child *Thing) {
	if child == nil {
		return
	}
	t.Add(name, Value{Thing: child})
}

// Values возвращает все значения свойства в порядке объявления
func (t *Thing) Values(name string) []Value {
	if t == nil {
		return nil
	}
	return t.props[name]
}

// PropertyNames возвращает имена всех свойств в порядке первого объявления
func (t *Thing) PropertyNames() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// FirstValue возвращает первое значение свойства
func (t *Thing) FirstValue(name string) (Value, bool) {
	vals := t.Values(name)
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[0], true
}

// FirstNonEmptyString возвращает первое непустое строковое значение свойства.
// Семантика "первое непустое среди всех объявленных значений" — это механизм
// устойчивости к частично сломанной разметке, а не деталь реализации.
func (t *Thing) FirstNonEmptyString(name string) string {
	for _, v := range t.Values(name) {
		if v.Thing != nil {
			continue
		}
		if s := strings.TrimSpace(v.Str); s != "" {
			return s
		}
	}
	return ""
}

// FirstNonEmptyStringOf возвращает первое непустое строковое значение среди
// нескольких свойств, проверяя их в заданном порядке предпочтения
func (t *Thing) FirstNonEmptyStringOf(names ...string) string {
	for _, name := range names {
		if s := t.FirstNonEmptyString(name); s != "" {
			return s
		}
	}
	return ""
}

// FirstThing возвращает первый вложенный объект среди значений свойства
func (t *Thing) FirstThing(name string) *Thing {
	for _, v := range t.Values(name) {
		if v.Thing != nil {
			return v.Thing
		}
	}
	return nil
}

// FirstThingOfType возвращает первый вложенный объект заданного типа
func (t *Thing) FirstThingOfType(name, typ string) *Thing {
	for _, v := range t.Values(name) {
		if v.Thing != nil && v.Thing.Type == typ {
			return v.Thing
		}
	}
	return nil
}

// NonEmptyStrings возвращает все непустые строковые значения свойства
func (t *Thing) NonEmptyStrings(name string) []string {
	var out []string
	for _, v := range t.Values(name) {
		if v.Thing != nil {
			// Изображения бывают объявлены как ImageObject с url внутри
			if s := v.Thing.FirstNonEmptyStringOf("url", "contentUrl"); s != "" {
				out = append(out, s)
			}
			continue
		}
		if s := strings.TrimSpace(v.Str); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ResolveEntityName извлекает человекочитаемое имя из полиморфного значения
// Organization|Brand|Person|строка. Закрытый набор вариантов обрабатывается
// явным switch, для неизвестных типов и строк работает запасная ветка
// "первое непустое строковое значение".
func ResolveEntityName(values []Value) string {
	for _, v := range values {
		var name string
		if v.Thing == nil {
			name = strings.TrimSpace(v.Str)
		} else {
			switch v.Thing.Type {
			case TypeOrganization:
				name = v.Thing.FirstNonEmptyStringOf("name", "legalName")
			case TypeBrand:
				name = v.Thing.FirstNonEmptyString("name")
			case TypePerson:
				family := v.Thing.FirstNonEmptyString("familyName")
				if family == "" {
					name = v.Thing.FirstNonEmptyString("name")
					break
				}
				given := v.Thing.FirstNonEmptyString("givenName")
				if given == "" {
					name = family
				} else {
					name = given + " " + family
				}
			default:
				// Неизвестный тип: считаем узел строковым значением
				name = v.Thing.FirstNonEmptyString("name")
			}
		}
		if name != "" {
			return name
		}
	}
	return ""
}
