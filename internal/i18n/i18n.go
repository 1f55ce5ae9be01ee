package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Default is the language used when nothing better matches.
const Default = "pt"

var (
	tags    = []language.Tag{language.BrazilianPortuguese, language.English}
	bases   = []string{"pt", "en"}
	matcher = language.NewMatcher(tags)
)

// Supported lists the language codes with a dictionary.
func Supported() []string { return append([]string(nil), bases...) }

// Normalize maps a tag such as "pt-BR" or "EN_gb" to a supported code.
func Normalize(lang string) (string, bool) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, b := range bases {
		if base.String() == b {
			return b, true
		}
	}
	return "", false
}

// DetectLanguage picks the best supported language from an Accept-Language
// header.
func DetectLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default
	}
	return bases[idx]
}

// T translates code. Unknown languages use Default; unknown codes are
// returned as is, so literal messages pass through.
func T(lang, code string) string {
	if m, ok := dict[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := dict[Default][code]; ok {
		return s
	}
	return code
}

// Tf translates code and formats it with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

type langKey struct{}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the request language or Default.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(langKey{}).(string); ok && l != "" {
		return l
	}
	return Default
}
