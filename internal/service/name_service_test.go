package service

import (
	"reflect"
	"strings"
	"testing"

	"appsuite-be/internal/models"
)

func TestAnalyzeName(t *testing.T) {
	got, err := NewNameService().Analyze("  Anna Lee ")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if got.Name != "Anna Lee" || got.UppercaseName != "ANNA LEE" || got.ReversedName != "eeL annA" {
		t.Errorf("forms = %q %q %q", got.Name, got.UppercaseName, got.ReversedName)
	}
	if want := []string{"A", "E", "L", "N"}; !reflect.DeepEqual(got.UniqueChars, want) {
		t.Errorf("unique chars = %v; want %v", got.UniqueChars, want)
	}
	want := models.NameStats{TotalChars: 8, LettersOnly: 7, Vowels: 4, Consonants: 3, Words: 2}
	if got.Stats != want {
		t.Errorf("stats = %+v; want %+v", got.Stats, want)
	}
}

func TestAnalyzeNameFunFacts(t *testing.T) {
	got, err := NewNameService().Analyze("Anna Lee")
	if err != nil {
		t.Fatal(err)
	}
	facts := strings.Join(got.FunFacts, "\n")

	for _, want := range []string{
		"The letter 'A' appears most frequently (2 times)!",
		"Your vowel-to-consonant ratio is 1.33, very melodious!",
		"Perfect length!",
		"The ASCII value sum of your name is 660 - that's unique!",
	} {
		if !strings.Contains(facts, want) {
			t.Errorf("fun facts missing %q:\n%s", want, facts)
		}
	}
	if strings.Contains(facts, "palindrome") {
		t.Error("Anna Lee is not a palindrome")
	}
}

func TestAnalyzeNamePalindromeAndRatio(t *testing.T) {
	got, _ := NewNameService().Analyze("Bob")
	facts := strings.Join(got.FunFacts, "\n")

	if !strings.Contains(facts, "palindrome") {
		t.Errorf("Bob should be a palindrome:\n%s", facts)
	}
	if !strings.Contains(facts, "ratio is 0.5, nicely balanced") {
		t.Errorf("unexpected ratio:\n%s", facts)
	}
	if !strings.Contains(facts, "Short and sweet!") {
		t.Errorf("missing length remark:\n%s", facts)
	}
	if !strings.Contains(facts, "'B' appears most frequently (2 times)") {
		t.Errorf("unexpected frequency fact:\n%s", facts)
	}
}

func TestFormatRatio(t *testing.T) {
	tests := map[float64]string{1: "1.0", 0.5: "0.5", 1.33: "1.33", 2: "2.0"}
	for in, want := range tests {
		if got := formatRatio(in); got != want {
			t.Errorf("formatRatio(%v) = %q; want %q", in, got, want)
		}
	}
}

func TestAnalyzeEmptyName(t *testing.T) {
	if _, err := NewNameService().Analyze("   "); !IsValidationError(err) {
		t.Errorf("error = %v; want ValidationError", err)
	}
}
