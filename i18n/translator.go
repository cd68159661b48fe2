package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_literal":
			return "リテラル値と一致しません"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_union":
			return "どの候補にも一致しません"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "not_multiple_of":
			return "倍数ではありません"
		case "not_unique":
			return "要素が重複しています"
		case "never":
			return "いかなる値も受理しません"
		case "not_allowed":
			return "禁止されたスキーマに一致しました"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_literal":
			return "value does not equal the literal"
		case "invalid_enum":
			return "value is not one of the allowed values"
		case "invalid_union":
			return "value matches no allowed variant"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "value does not match pattern"
		case "not_multiple_of":
			return "value is not a multiple of the divisor"
		case "not_unique":
			return "duplicate element"
		case "never":
			return "no value is accepted"
		case "not_allowed":
			return "value matches a forbidden schema"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// T translates an issue code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}

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
