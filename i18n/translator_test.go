package i18n_test

import (
	"testing"

	"github.com/kadomatsu/katachi/i18n"
)

func TestT_DefaultEnglish(t *testing.T) {
	if got := i18n.T("invalid_type", nil); got != "invalid type" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestT_UnknownCodeFallsBackToCode(t *testing.T) {
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code should echo the code, got %q", got)
	}
}

func TestSetLanguage_Japanese(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("required", nil); got != "必須プロパティが不足しています" {
		t.Fatalf("unexpected ja message: %q", got)
	}
}

func TestSetLanguage_UnknownFallsBackToEnglish(t *testing.T) {
	i18n.SetLanguage("xx")
	defer i18n.SetLanguage("en")
	if got := i18n.T("too_small", nil); got != "too small" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, data map[string]string) string {
	return "CODE:" + code
}

func TestSetTranslator_CustomAndReset(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	if got := i18n.T("pattern", nil); got != "CODE:pattern" {
		t.Fatalf("custom translator not used: %q", got)
	}
	i18n.SetTranslator(nil)
	if got := i18n.T("pattern", nil); got != "value does not match pattern" {
		t.Fatalf("reset to default failed: %q", got)
	}
}
