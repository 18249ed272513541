// Package i18n picks which of the bilingual (ES/EN) content fields to serve.
package i18n

import (
	"golang.org/x/text/language"
)

type Lang string

const (
	ES Lang = "es"
	EN Lang = "en"
)

var matcher = language.NewMatcher([]language.Tag{
	language.Spanish, // first tag is the fallback
	language.English,
})

// Pick resolves the language from an explicit query value first and the
// Accept-Language header second. Anything unrecognised falls back to ES.
func Pick(query, acceptLanguage string) Lang {
	if query != "" {
		if tag, err := language.Parse(query); err == nil {
			return fromTag(tag)
		}
	}
	if acceptLanguage == "" {
		return ES
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ES
	}
	_, idx, _ := matcher.Match(tags...)
	if idx == 1 {
		return EN
	}
	return ES
}

func fromTag(tag language.Tag) Lang {
	base, _ := tag.Base()
	if base.String() == "en" {
		return EN
	}
	return ES
}

// Text returns the field for lang, falling back to the Spanish text when the
// English one is empty.
func Text(lang Lang, es, en string) string {
	if lang == EN && en != "" {
		return en
	}
	return es
}
