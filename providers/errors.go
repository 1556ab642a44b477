package providers

import (
	"errors"
	"fmt"
)

// Таксономия ошибок провайдеров. Отдельная деталь (параметр, оффер,
// изображение) при проблемах просто опускается; фатальны только структурные
// несоответствия, делающие ненадежной всю запись.

// ParseError ожидаемая структура страницы отсутствует или внутренне
// противоречива (нет Product, не совпали длины таблицы цен и т.п.)
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error: %s (%s)", e.Reason, e.URL)
}

// DomainNotTrustedError URL вне списка доверенных доменов. Не дает
// использовать обобщенный провайдер "по URL" как открытый прокси.
type DomainNotTrustedError struct {
	URL string
}

func (e *DomainNotTrustedError) Error() string {
	return fmt.Sprintf("domain not trusted: %s", e.URL)
}

// FetchError ошибка транспорта или таймаут при запросе страницы.
// Внутренних повторов нет: ретраи — ответственность вызывающего.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsParseError проверяет, что ошибка является ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsDomainNotTrusted проверяет, что ошибка является DomainNotTrustedError
func IsDomainNotTrusted(err error) bool {
	var de *DomainNotTrustedError
	return errors.As(err, &de)
}

// IsFetchError проверяет, что ошибка является FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
