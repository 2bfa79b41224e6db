package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "got" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"structural_mismatch": "document root must be an object, got {got}",
		"invalid_type":        "invalid type",
		"duplicate_key":       "duplicate key",
		"parse_error":         "parse error",
		"truncated":           "input exceeds the size limit",
		"invalid_config":      "invalid configuration: {reason}",
		"aggregate_violation": "normalized value breaks an invariant: {reason}",
	},
	"zh": {
		"structural_mismatch": "文档根节点必须是对象，实际为 {got}",
		"invalid_type":        "类型错误",
		"duplicate_key":       "键重复",
		"parse_error":         "解析错误",
		"truncated":           "输入超过大小限制",
		"invalid_config":      "配置无效：{reason}",
		"aggregate_violation": "规范化结果违反约束：{reason}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"zh").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
