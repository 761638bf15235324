package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "name" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"invalid_example":       "example does not match its matcher",
		"invalid_size_bound":    "invalid array size bound",
		"unsupported_operation": "operation not supported on this node",
		"use_after_close":       "node is already closed",
		"not_closed":            "node is not closed yet",
		"invalid_pattern":       "unsupported date/time pattern",
	},
	"ja": {
		"invalid_example":       "例の値がマッチャーに一致しません",
		"invalid_size_bound":    "配列サイズの指定が不正です",
		"unsupported_operation": "このノードでは実行できない操作です",
		"use_after_close":       "ノードは既に閉じられています",
		"not_closed":            "ノードがまだ閉じられていません",
		"invalid_pattern":       "未対応の日付/時刻パターンです",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		return code
	}
	if detail := data["detail"]; detail != "" {
		return msg + ": " + detail
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	lang = strings.ToLower(lang)
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
