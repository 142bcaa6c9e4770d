package enums

import "fmt"

// Language enumerates the display locales carried by catalog fixtures. Menu
// amounts are locale-independent; only names and descriptions vary.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
	LanguageJA Language = "ja"
)

var validLanguages = []Language{
	LanguageZH,
	LanguageEN,
	LanguageJA,
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// IsValid reports whether the value is a known Language.
func (l Language) IsValid() bool {
	for _, candidate := range validLanguages {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLanguage converts raw input into a Language, defaulting to Chinese for
// empty input the way the front end does.
func ParseLanguage(value string) (Language, error) {
	if value == "" {
		return LanguageZH, nil
	}
	for _, candidate := range validLanguages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid language %q", value)
}
