package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"appsuite-be/internal/models"
)

const vowels = "aeiou"

// NameService computes display forms, statistics and fun facts for a name.
type NameService interface {
	Analyze(name string) (*models.NameAnalysis, error)
}

type nameService struct{}

func NewNameService() NameService {
	return &nameService{}
}

func (s *nameService) Analyze(name string) (*models.NameAnalysis, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Name cannot be empty")
	}

	upper := strings.ToUpper(name)
	stats := nameStats(name)

	return &models.NameAnalysis{
		Name:          name,
		UppercaseName: upper,
		ReversedName:  reverse(name),
		UniqueChars:   uniqueChars(upper),
		Stats:         stats,
		FunFacts:      funFacts(name, stats),
	}, nil
}

func nameStats(name string) models.NameStats {
	var stats models.NameStats
	stats.TotalChars = utf8.RuneCountInString(name)
	stats.Words = len(strings.Fields(name))

	for _, r := range name {
		if unicode.IsLetter(r) {
			stats.LettersOnly++
		}
	}
	for _, r := range strings.ToLower(name) {
		switch {
		case strings.ContainsRune(vowels, r):
			stats.Vowels++
		case unicode.IsLetter(r):
			stats.Consonants++
		}
	}
	return stats
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func uniqueChars(s string) []string {
	seen := map[rune]bool{}
	chars := []string{}
	for _, r := range s {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		chars = append(chars, string(r))
	}
	sort.Strings(chars)
	return chars
}

func funFacts(name string, stats models.NameStats) []string {
	facts := []string{}

	if r, count, ok := mostFrequent(strings.ReplaceAll(strings.ToLower(name), " ", "")); ok {
		plural := ""
		if count > 1 {
			plural = "s"
		}
		facts = append(facts, fmt.Sprintf("The letter '%s' appears most frequently (%d time%s)!", strings.ToUpper(string(r)), count, plural))
	}

	if stats.Consonants > 0 {
		ratio := math.Round(float64(stats.Vowels)/float64(stats.Consonants)*100) / 100
		mood := "nicely balanced"
		if ratio > 0.8 {
			mood = "very melodious"
		}
		facts = append(facts, fmt.Sprintf("Your vowel-to-consonant ratio is %s, %s!", formatRatio(ratio), mood))
	}

	switch {
	case stats.LettersOnly <= 4:
		facts = append(facts, "Short and sweet! Studies show shorter names are easier to remember.")
	case stats.LettersOnly <= 8:
		facts = append(facts, "Perfect length! Your name is memorable and easy to pronounce.")
	default:
		facts = append(facts, "Majestic and distinguished! Longer names are often associated with elegance.")
	}

	sum := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			sum += int(r)
		}
	}
	facts = append(facts, fmt.Sprintf("The ASCII value sum of your name is %d - that's unique!", sum))

	clean := []rune(strings.Join(strings.Fields(strings.ToLower(name)), ""))
	if len(clean) > 1 && string(clean) == reverse(string(clean)) {
		facts = append(facts, "🎊 WOW! Your name is a palindrome - it reads the same forwards and backwards!")
	}

	return facts
}

// mostFrequent returns the most common rune; ties go to the one seen first.
func mostFrequent(s string) (rune, int, bool) {
	counts := map[rune]int{}
	order := []rune{}
	for _, r := range s {
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
	}
	if len(order) == 0 {
		return 0, 0, false
	}

	best := order[0]
	for _, r := range order[1:] {
		if counts[r] > counts[best] {
			best = r
		}
	}
	return best, counts[best], true
}

// formatRatio prints whole numbers with a trailing .0, e.g. 1.0 and 0.5.
func formatRatio(ratio float64) string {
	s := strconv.FormatFloat(ratio, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
