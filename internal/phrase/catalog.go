package phrase

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog renders phrases in the language that best fits a preference.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// New builds the catalog from the bundled dictionaries; English is the fallback.
func New() (*Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := []language.Tag{language.English}

	for code, phrases := range dictionaries {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid dictionary language %q: %w", code, err)
		}

		if tag != language.English {
			supported = append(supported, tag)
		}

		for key, text := range phrases {
			if err = builder.SetString(tag, string(key), text); err != nil {
				return nil, fmt.Errorf("failed to add phrase %s/%s: %w", code, key, err)
			}
		}
	}

	return &Catalog{
		builder:   builder,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Match picks the supported language closest to pref.
func (that *Catalog) Match(pref Preference) language.Tag {
	_, index, _ := that.matcher.Match(pref...)

	return that.supported[index]
}

// Phrase formats key for pref.
func (that *Catalog) Phrase(pref Preference, key Key, args ...any) string {
	printer := message.NewPrinter(that.Match(pref), message.Catalog(that.builder))

	return printer.Sprintf(string(key), args...)
}
