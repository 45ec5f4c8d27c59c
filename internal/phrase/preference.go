package phrase

import (
	"slices"

	"github.com/samber/lo"
	"golang.org/x/text/language"
)

// Preference is an ordered list of acceptable languages, most wanted first.
type Preference []language.Tag

// Parse turns a language code into a single-language preference; an unparsable code gives an empty one.
func Parse(code string) Preference {
	tag, err := language.Parse(code)
	if err != nil {
		return Preference{}
	}

	return Preference{tag}
}

// Merge combines the preferences of several players. Languages are ordered by the number
// of players listing them. When no language is shared by a strict majority the result is empty,
// so callers fall back with Or.
func Merge(prefs ...Preference) Preference {
	voters := lo.Filter(prefs, func(p Preference, _ int) bool { return len(p) > 0 })
	if len(voters) == 0 {
		return Preference{}
	}

	var order []language.Tag
	votes := make(map[language.Tag]int)
	for _, pref := range voters {
		base := lo.Uniq(lo.Map(pref, func(tag language.Tag, _ int) language.Tag { return baseTag(tag) }))
		for _, tag := range base {
			if votes[tag] == 0 {
				order = append(order, tag)
			}
			votes[tag]++
		}
	}

	slices.SortStableFunc(order, func(a, b language.Tag) int {
		return votes[b] - votes[a]
	})

	if votes[order[0]]*2 <= len(voters) {
		return Preference{}
	}

	return order
}

// Or returns the preference itself, or fallback when it is empty.
func (that Preference) Or(fallback Preference) Preference {
	if len(that) == 0 {
		return fallback
	}

	return that
}

func baseTag(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	parsed, err := language.Compose(base)
	if err != nil {
		return tag
	}

	return parsed
}
