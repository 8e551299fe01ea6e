package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"learnlang/internal/api"
)

// common lists the base codes whose English names are accepted as input.
var common = []string{
	"en", "es", "fr", "de", "it", "pt", "ja", "ko", "zh", "ru", "ar", "hi",
	"nl", "pl", "sv", "da", "no", "fi", "tr", "el", "he", "bn", "ur", "ta",
	"te", "mr", "gu", "pa", "vi", "th", "id", "ms", "sw", "fa", "uk", "cs",
	"ro", "hu",
}

// byName maps lowercase English names to base codes, built at init time.
var byName map[string]string

func init() {
	namer := display.Tags(xlanguage.English)
	byName = make(map[string]string, len(common))
	for _, code := range common {
		if name := namer.Name(xlanguage.Make(code)); name != "" {
			byName[strings.ToLower(name)] = code
		}
	}
}

// Canonical returns the base language code for a tag, an ISO 639-2 code or
// an English name: "hi-IN", "hin" and "Hindi" all yield "hi". It returns ""
// for unrecognized input.
func Canonical(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if tag, err := xlanguage.Parse(input); err == nil && tag != xlanguage.Und {
		base, _ := tag.Base()
		return base.String()
	}
	return byName[strings.ToLower(input)]
}

// EnglishName returns the English name of a language, or "" when unknown.
func EnglishName(input string) string {
	code := Canonical(input)
	if code == "" {
		return ""
	}
	return display.Tags(xlanguage.English).Name(xlanguage.Make(code))
}

// NativeName returns a language's name in that language, or "" when unknown.
func NativeName(input string) string {
	code := Canonical(input)
	if code == "" {
		return ""
	}
	return display.Self.Name(xlanguage.Make(code))
}

// Match finds the backend language a user meant. An exact id wins; otherwise
// the input is compared by canonical code and then by name.
func Match(input string, langs []api.Language) (api.Language, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return api.Language{}, false
	}
	for _, lang := range langs {
		if strings.EqualFold(lang.ID, input) {
			return lang, true
		}
	}
	if want := Canonical(input); want != "" {
		for _, lang := range langs {
			if Canonical(codeOf(lang)) == want {
				return lang, true
			}
		}
	}
	for _, lang := range langs {
		if strings.EqualFold(strings.TrimSpace(lang.Name), input) {
			return lang, true
		}
	}
	return api.Language{}, false
}

func codeOf(lang api.Language) string {
	if code := strings.TrimSpace(lang.Code); code != "" {
		return code
	}
	return lang.ID
}
