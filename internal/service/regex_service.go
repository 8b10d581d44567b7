package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"appsuite-be/internal/models"
)

// RegexService runs a pattern against a test string and reports every match.
type RegexService interface {
	Test(pattern, subject, flags string) ([]models.RegexMatch, error)
}

type regexService struct{}

func NewRegexService() RegexService {
	return &regexService{}
}

// Compile builds a regexp from a pattern and a flag string. Recognized flags are
// i (case-insensitive), m (multi-line), s (dot matches newline) and x (verbose); others are ignored.
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	if strings.ContainsRune(flags, 'x') {
		pattern = stripVerbose(pattern)
	}

	var inline strings.Builder
	for _, f := range []rune{'i', 'm', 's'} {
		if strings.ContainsRune(flags, f) {
			inline.WriteRune(f)
		}
	}
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, invalid("Invalid regex: " + err.Error())
	}
	return re, nil
}

// stripVerbose drops unescaped whitespace and #-comments that sit outside character classes.
func stripVerbose(pattern string) string {
	runes := []rune(pattern)
	var b strings.Builder
	inClass := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			b.WriteRune(r)
			b.WriteRune(runes[i+1])
			i++
		case inClass:
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
		case r == '[':
			inClass = true
			b.WriteRune(r)
			if i+1 < len(runes) && runes[i+1] == '^' {
				b.WriteRune('^')
				i++
			}
			// a leading ] is a literal member of the class
			if i+1 < len(runes) && runes[i+1] == ']' {
				b.WriteRune(']')
				i++
			}
		case unicode.IsSpace(r):
		case r == '#':
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *regexService) Test(pattern, subject, flags string) ([]models.RegexMatch, error) {
	re, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}

	names := re.SubexpNames()
	matches := []models.RegexMatch{}
	for _, loc := range re.FindAllStringSubmatchIndex(subject, -1) {
		m := models.RegexMatch{
			FullMatch:   subject[loc[0]:loc[1]],
			Start:       utf8.RuneCountInString(subject[:loc[0]]),
			End:         utf8.RuneCountInString(subject[:loc[1]]),
			Groups:      make([]*string, 0, re.NumSubexp()),
			NamedGroups: map[string]*string{},
		}
		for g := 1; g <= re.NumSubexp(); g++ {
			var value *string
			if start := loc[2*g]; start >= 0 {
				v := subject[start:loc[2*g+1]]
				value = &v
			}
			m.Groups = append(m.Groups, value)
			if names[g] != "" {
				m.NamedGroups[names[g]] = value
			}
		}
		matches = append(matches, m)
	}
	return matches, nil
}
