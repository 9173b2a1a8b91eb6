// Package i18n holds the localized strings shown to building list users and
// resolves the locale to print them in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the canonical source locale.
const BaseLocale = "en-US"

// Message keys.
const (
	KeyEmptyList = "render.empty"
	KeyListTitle = "render.title"
)

var (
	baseTag   = language.MustParse(BaseLocale)
	supported = []language.Tag{baseTag, language.MustParse("pt-BR")}
	matcher   = language.NewMatcher(supported)
)

var messages = map[string]map[string]string{
	BaseLocale: {
		KeyEmptyList:              "Empty",
		KeyListTitle:              "Buildings",
		"BUILDING_NAME_EMPTY":     "Building name is required.",
		"BUILDING_ALREADY_EXISTS": "That building is already listed.",
		"FILTER_QUERY_EMPTY":      "Enter a building name to search.",
		"REPOSITORY_UNAVAILABLE":  "Buildings are unavailable right now.",
		"RECORD_ENCODING_FAILED":  "Buildings could not be sent.",
		"UNKNOWN":                 "Something went wrong.",
	},
	"pt-BR": {
		KeyEmptyList:              "Vazio",
		KeyListTitle:              "Edifícios",
		"BUILDING_NAME_EMPTY":     "O nome do edifício é obrigatório.",
		"BUILDING_ALREADY_EXISTS": "Esse edifício já está listado.",
		"FILTER_QUERY_EMPTY":      "Informe o nome de um edifício para buscar.",
		"REPOSITORY_UNAVAILABLE":  "Os edifícios não estão disponíveis agora.",
		"RECORD_ENCODING_FAILED":  "Não foi possível enviar os edifícios.",
		"UNKNOWN":                 "Algo deu errado.",
	},
}

var builtCatalog = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(baseTag))
	for locale, entries := range messages {
		tag := language.MustParse(locale)
		for key, value := range entries {
			if err := builder.SetString(tag, key, value); err != nil {
				panic(err)
			}
		}
	}
	return builder
}

// Printer formats localized messages for one locale.
type Printer struct {
	locale  string
	printer *message.Printer
}

// NewPrinter returns a printer for the closest supported match of locale.
func NewPrinter(locale string) *Printer {
	tag := ResolveTag(locale)
	return &Printer{
		locale:  tag.String(),
		printer: message.NewPrinter(tag, message.Catalog(builtCatalog)),
	}
}

// Default returns a printer for BaseLocale.
func Default() *Printer {
	return NewPrinter(BaseLocale)
}

// Locale returns the resolved locale identifier.
func (p *Printer) Locale() string {
	if p == nil {
		return BaseLocale
	}
	return p.locale
}

// Text returns the message for key, or key itself when no translation exists.
func (p *Printer) Text(key string) string {
	if p == nil {
		p = Default()
	}
	return p.printer.Sprintf(key)
}

// ResolveTag picks the supported tag closest to an Accept-Language style
// value. Blank or unparseable input resolves to BaseLocale.
func ResolveTag(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return baseTag
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return baseTag
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return baseTag
	}
	return supported[index]
}
