package schema

import (
	"mime"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Магазины нередко объявляют одну кодировку, а отдают другую. Стратегия одна
// на документ: сначала charset из HTTP заголовка Content-Type, затем
// <meta charset>/<meta http-equiv> из начала документа; результат принимается
// только если получился валидный UTF-8. Строки, оставшиеся невалидными после
// декодирования документа, чинятся точечно через SanitizeUTF8.

var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?\s*([a-zA-Z0-9_\-]+)`)

// DecodeDocument приводит тело HTML документа к UTF-8.
// contentType — значение HTTP заголовка Content-Type (может быть пустым).
func DecodeDocument(data []byte, contentType string) []byte {
	// 1. Кодировка из HTTP заголовка
	if name := charsetFromContentType(contentType); name != "" {
		if decoded, ok := decodeAs(data, name); ok {
			return decoded
		}
	}

	// 2. Кодировка из <meta> в начале документа
	if name := charsetFromMeta(data); name != "" {
		if decoded, ok := decodeAs(data, name); ok {
			return decoded
		}
	}

	// 3. Без объявления: валидный UTF-8 оставляем как есть
	if utf8.Valid(data) {
		return data
	}

	// 4. Последняя попытка: Windows-1252 покрывает типичные западные магазины
	if decoded, ok := decodeWith(data, charmap.Windows1252.NewDecoder()); ok {
		return decoded
	}

	return data
}

// SanitizeUTF8 возвращает строку, гарантированно являющуюся валидным UTF-8.
// Невалидные строки декодируются как ISO-8859-1: каждый байт — допустимый
// код Latin-1, поэтому результат всегда валиден.
func SanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, _, err := transform.String(charmap.ISO8859_1.NewDecoder(), s)
	if err != nil {
		// Недостижимо для Latin-1, но на всякий случай вычищаем байты вручную
		return strings.ToValidUTF8(s, "")
	}
	return decoded
}

// charsetFromContentType извлекает charset из заголовка Content-Type
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

// charsetFromMeta ищет объявление кодировки в начале документа
func charsetFromMeta(data []byte) string {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	match := metaCharsetRe.FindSubmatch(head)
	if match == nil {
		return ""
	}
	return string(match[1])
}

// decodeAs декодирует данные из именованной кодировки в UTF-8
func decodeAs(data []byte, name string) ([]byte, bool) {
	if strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		if utf8.Valid(data) {
			return data, true
		}
		return nil, false
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, false
	}
	return decodeWith(data, enc.NewDecoder())
}

// decodeWith прогоняет данные через декодер и принимает результат только
// если получился валидный UTF-8
func decodeWith(data []byte, decoder transform.Transformer) ([]byte, bool) {
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil || !utf8.Valid(decoded) {
		return nil, false
	}
	return decoded, true
}
