package reconcile

import (
	"encoding/json"
	"fmt"

	"locize-sync/core/utils"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ParseLanguages decodes a language document of the form
//
//	{"en": {"name": "English", "nativeName": "English", "isReferenceLanguage": true}, ...}
//
// keeping the document order. A plain string value is taken as the name.
// Missing names are filled in from CLDR display names.
func ParseLanguages(data []byte) (Languages, error) {
	fields, err := utils.OrderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse languages: %w", err)
	}

	langs := make(Languages, 0, len(fields))
	for _, field := range fields {
		lang := Language{Code: field.Key}

		var meta any
		if err := json.Unmarshal(field.Value, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse language %s: %w", field.Key, err)
		}

		switch m := meta.(type) {
		case map[string]any:
			lang.Name = utils.ToString(m["name"])
			lang.NativeName = utils.ToString(m["nativeName"])
			lang.Reference = utils.ToBool(m["isReferenceLanguage"])
		case string:
			lang.Name = m
		}

		langs = append(langs, WithDisplayNames(lang))
	}

	return langs, nil
}

// WithDisplayNames fills empty Name and NativeName fields from the language code.
func WithDisplayNames(lang Language) Language {
	tag, err := language.Parse(lang.Code)
	if err != nil {
		if lang.Name == "" {
			lang.Name = lang.Code
		}
		return lang
	}

	if lang.Name == "" {
		lang.Name = display.English.Tags().Name(tag)
		if lang.Name == "" {
			lang.Name = lang.Code
		}
	}
	if lang.NativeName == "" {
		lang.NativeName = display.Self.Name(tag)
	}
	return lang
}

// IsLanguageCode reports whether code parses as a BCP 47 tag.
func IsLanguageCode(code string) bool {
	if code == "" {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}
