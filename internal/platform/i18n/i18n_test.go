package i18n

import "testing"

func TestResolveTag(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "blank", value: "", want: "en-US"},
		{name: "exact", value: "pt-BR", want: "pt-BR"},
		{name: "base language", value: "pt", want: "pt-BR"},
		{name: "accept language list", value: "fr-CH, pt;q=0.9, en;q=0.8", want: "pt-BR"},
		{name: "unsupported", value: "ja", want: "en-US"},
		{name: "garbage", value: "!!", want: "en-US"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveTag(tc.value).String(); got != tc.want {
				t.Fatalf("tag = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPrinterText(t *testing.T) {
	if got := Default().Text(KeyEmptyList); got != "Empty" {
		t.Fatalf("en empty = %q, want Empty", got)
	}
	if got := NewPrinter("pt-BR").Text(KeyEmptyList); got != "Vazio" {
		t.Fatalf("pt-BR empty = %q, want Vazio", got)
	}
	if got := NewPrinter("pt-BR").Text("FILTER_QUERY_EMPTY"); got != "Informe o nome de um edifício para buscar." {
		t.Fatalf("pt-BR filter message = %q", got)
	}
}

func TestPrinterLocale(t *testing.T) {
	if got := NewPrinter("pt").Locale(); got != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", got)
	}
	var nilPrinter *Printer
	if got := nilPrinter.Locale(); got != BaseLocale {
		t.Fatalf("nil printer locale = %q", got)
	}
	if got := nilPrinter.Text(KeyEmptyList); got != "Empty" {
		t.Fatalf("nil printer text = %q", got)
	}
}

func TestEveryLocaleHasBaseKeys(t *testing.T) {
	for locale, entries := range messages {
		for key := range messages[BaseLocale] {
			if _, ok := entries[key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
	}
}
