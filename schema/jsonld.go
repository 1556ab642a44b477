package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

// parseJSONLD разбирает содержимое одного JSON-LD блока в список объектов.
// Сломанный JSON или неожиданная структура дают пустой результат, не ошибку.
func parseJSONLD(raw string) []*Thing {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}

	return jsonldTopLevel(decoded)
}

// jsonldTopLevel обрабатывает верхний уровень JSON-LD: объект, массив
// объектов или контейнер с @graph
func jsonldTopLevel(decoded interface{}) []*Thing {
	var things []*Thing

	switch v := decoded.(type) {
	case []interface{}:
		for _, item := range v {
			things = append(things, jsonldTopLevel(item)...)
		}
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				things = append(things, jsonldTopLevel(item)...)
			}
			return things
		}
		if t := jsonldThing(v); t != nil {
			things = append(things, t)
		}
	}

	return things
}

// jsonldThing преобразует JSON объект в Thing
func jsonldThing(obj map[string]interface{}) *Thing {
	t := NewThing(jsonldType(obj["@type"]))

	if id, ok := obj["@id"].(string); ok {
		t.ID = id
	}

	for key, value := range obj {
		if strings.HasPrefix(key, "@") {
			continue
		}
		addJSONLDValue(t, key, value)
	}

	return t
}

// addJSONLDValue добавляет значение свойства, разворачивая массивы и
// вложенные объекты
func addJSONLDValue(t *Thing, key string, value interface{}) {
	switch v := value.(type) {
	case nil:
		// пропускаем
	case string:
		t.AddString(key, v)
	case bool:
		t.AddString(key, strconv.FormatBool(v))
	case float64:
		t.AddString(key, strconv.FormatFloat(v, 'f', -1, 64))
	case []interface{}:
		for _, item := range v {
			addJSONLDValue(t, key, item)
		}
	case map[string]interface{}:
		// Значение вида {"@value": "..."} — это строка, а не вложенный объект
		if raw, ok := v["@value"]; ok {
			addJSONLDValue(t, key, raw)
			return
		}
		t.AddThing(key, jsonldThing(v))
	}
}

// jsonldType извлекает имя типа из @type (строка или массив строк),
// отбрасывая префикс словаря schema.org
func jsonldType(raw interface{}) string {
	var typ string
	switch v := raw.(type) {
	case string:
		typ = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				typ = s
				break
			}
		}
	}

	typ = strings.TrimSpace(typ)
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/", "schema:"} {
		typ = strings.TrimPrefix(typ, prefix)
	}
	return typ
}
