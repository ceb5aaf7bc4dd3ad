package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unknown_reference", map[string]string{"ref": "address"}); msg != "unknown reference address" {
		t.Fatalf("unexpected message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("duplicate_name", map[string]string{"name": "x"}); msg != "名前 x が重複しています" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_MissingDataAndUnknownCode(t *testing.T) {
	if msg := T("invalid_type", nil); msg != "invalid type" {
		t.Fatalf("placeholder not dropped: %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "required property missing" {
		t.Fatalf("nil should restore default, got %q", msg)
	}
}

func TestTranslator_EncoderCodes(t *testing.T) {
	if msg := T("limit_exceeded", nil); msg != "output limit exceeded" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := T("incomplete", nil); msg != "encoding stopped before the whole tree was written" {
		t.Fatalf("unexpected message %q", msg)
	}
}
