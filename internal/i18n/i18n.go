// Package i18n holds the English and Chinese UI strings.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported UI language
type Lang string

const (
	EN Lang = "en"
	ZH Lang = "zh"
)

// Tag returns the BCP 47 tag used for this language
func (l Lang) Tag() language.Tag {
	if l == ZH {
		return language.TraditionalChinese
	}
	return language.English
}

// Params are substituted into {name} placeholders
type Params map[string]any

// ParseLang maps a BCP 47 tag such as "zh-TW" or "en-US" to a supported
// language. Anything unrecognised falls back to English.
func ParseLang(tag string) Lang {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return EN
	}
	base, _ := t.Base()
	if base.String() == string(ZH) {
		return ZH
	}
	return EN
}

// Translate looks key up for lang and fills in params. Unknown languages use
// English, unknown keys are returned unchanged.
func Translate(lang Lang, key string, params Params) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[EN]
	}
	s, ok := table[key]
	if !ok {
		return key
	}
	for name, value := range params {
		s = strings.ReplaceAll(s, "{"+name+"}", fmt.Sprint(value))
	}
	return s
}

// Translator is bound to one language
type Translator struct {
	Lang Lang
}

func NewTranslator(lang Lang) Translator {
	return Translator{Lang: lang}
}

// T translates key with optional params
func (t Translator) T(key string, params ...Params) string {
	var p Params
	if len(params) > 0 {
		p = params[0]
	}
	return Translate(t.Lang, key, p)
}
