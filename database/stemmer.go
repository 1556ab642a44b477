package database

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// KeywordStemmer приводит слова к основам по алгоритму Snowball для
// поискового индекса деталей. Потокобезопасен, основы кэшируются.
type KeywordStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewKeywordStemmer создает стеммер для поискового индекса
func NewKeywordStemmer() *KeywordStemmer {
	return &KeywordStemmer{
		language: "english",
		cache:    make(map[string]string),
	}
}

// Stem возвращает основу слова.
// Например: "resistors" -> "resistor", "mounting" -> "mount"
func (s *KeywordStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	if cached, found := s.cache[normalized]; found {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		// Слова с неподдерживаемыми символами остаются как есть
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemText приводит к основам все слова текста.
// Например: "carbon film resistors" -> "carbon film resistor"
func (s *KeywordStemmer) StemText(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	stemmed := make([]string, len(words))
	for i, word := range words {
		stemmed[i] = s.Stem(word)
	}
	return strings.Join(stemmed, " ")
}
