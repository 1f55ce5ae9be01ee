package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("pt-BR,pt;q=0.9,en;q=0.5") != "pt" {
		t.Fatalf("expected pt")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "pt" {
		t.Fatalf("expected pt fallback")
	}
	if DetectLanguage("") != "pt" {
		t.Fatalf("expected default pt")
	}
	if DetectLanguage(";;garbage") != "pt" {
		t.Fatalf("expected default pt for malformed header")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("pt", "required") != "Obrigatório" {
		t.Fatalf("expected Obrigatório")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> pt translation
	if T("es", "required") != "Obrigatório" {
		t.Fatalf("expected pt fallback for es lang")
	}
	if Tf("en", "products.off", 15) != "15% OFF" {
		t.Fatalf("expected formatted discount badge")
	}
}

func TestDictionariesHaveSameKeys(t *testing.T) {
	for code := range dict["pt"] {
		if _, ok := dict["en"][code]; !ok {
			t.Errorf("en missing %q", code)
		}
	}
	for code := range dict["en"] {
		if _, ok := dict["pt"][code]; !ok {
			t.Errorf("pt missing %q", code)
		}
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{"pt-BR": "pt", "EN_gb": "en", "en": "en"} {
		got, ok := Normalize(in)
		if !ok || got != want {
			t.Errorf("Normalize(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := Normalize("fr"); ok {
		t.Errorf("fr is not supported")
	}
	if _, ok := Normalize(""); ok {
		t.Errorf("empty is not supported")
	}
}

func TestLangContext(t *testing.T) {
	if LangFromContext(context.Background()) != Default {
		t.Fatalf("expected default")
	}
	if LangFromContext(WithLang(context.Background(), "en")) != "en" {
		t.Fatalf("expected en")
	}
}
