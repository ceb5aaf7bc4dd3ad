package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "name" or "ref").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Messages may
// contain {key} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":            "required property missing",
		"invalid_type":        "invalid type {type}",
		"unknown_reference":   "unknown reference {ref}",
		"duplicate_name":      "duplicate name {name}",
		"invalid_bound":       "invalid bound",
		"structural_mismatch": "unbalanced container end",
		"incomplete":          "encoding stopped before the whole tree was written",
		"short_write":         "short write",
		"limit_exceeded":      "output limit exceeded",
	},
	"ja": {
		"required":            "必須プロパティが不足しています",
		"invalid_type":        "型 {type} は不正です",
		"unknown_reference":   "参照 {ref} が見つかりません",
		"duplicate_name":      "名前 {name} が重複しています",
		"invalid_bound":       "境界値が不正です",
		"structural_mismatch": "コンテナの終了が対応していません",
		"incomplete":          "ツリー全体を書き出す前にエンコードが停止しました",
		"short_write":         "書き込みが途中で終わりました",
		"limit_exceeded":      "出力の上限を超えました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if !strings.Contains(msg, "{") {
		return msg
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	// drop placeholders without data, e.g. "invalid type {type}" -> "invalid type"
	for {
		i := strings.IndexByte(msg, '{')
		if i < 0 {
			break
		}
		j := strings.IndexByte(msg[i:], '}')
		if j < 0 {
			break
		}
		msg = strings.TrimSpace(msg[:i]) + msg[i+j+1:]
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
