package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"not-string":    "Value should be string",
		"not-number":    "Value should be number",
		"number_min":    "Value should be more than {min}",
		"number_max":    "Value should be less than {max}",
		"literal_error": "Value should be {expected}",
		"not-object":    "Value should be object",
		"required":      "{key} is required",
		"array_error":   "Value should be array",
		"parse_error":   "parse error",
		"duplicate_key": "duplicate key",
		"truncated":     "truncated",
		"bind_error":    "cannot bind {key}",
	},
	"ja": {
		"not-string":    "文字列である必要があります",
		"not-number":    "数値である必要があります",
		"number_min":    "{min} 以上である必要があります",
		"number_max":    "{max} 以下である必要があります",
		"literal_error": "{expected} である必要があります",
		"not-object":    "オブジェクトである必要があります",
		"required":      "{key} は必須です",
		"array_error":   "配列である必要があります",
		"parse_error":   "解析エラー",
		"duplicate_key": "キーが重複しています",
		"truncated":     "打ち切られました",
		"bind_error":    "{key} を割り当てられません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
