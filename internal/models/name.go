package models

type NameStats struct {
	TotalChars  int `json:"total_chars"`
	LettersOnly int `json:"letters_only"`
	Vowels      int `json:"vowels"`
	Consonants  int `json:"consonants"`
	Words       int `json:"words"`
}

type NameAnalysis struct {
	Name          string    `json:"name"`
	UppercaseName string    `json:"uppercase_name"`
	ReversedName  string    `json:"reversed_name"`
	UniqueChars   []string  `json:"unique_chars"`
	Stats         NameStats `json:"stats"`
	FunFacts      []string  `json:"fun_facts"`
}
