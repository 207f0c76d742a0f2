package features

import (
	"strings"
	"unicode"
)

// Vowels is the fixed vowel alphabet. Letters outside it count as consonants.
const Vowels = "АЕЁИОУЫЭЮЯаеёиоуыэюя"

// Class is the three-way classification of a single rune
type Class int

const (
	// Other covers digits, punctuation and whitespace. It separates runs.
	Other Class = iota
	Vowel
	Consonant
)

// Letter type markers used in the first/last letter columns
const (
	VowelMarker     = "Г"
	ConsonantMarker = "С"
)

// Classify returns the class of a rune
func Classify(r rune) Class {
	if strings.ContainsRune(Vowels, r) {
		return Vowel
	}
	if unicode.IsLetter(r) {
		return Consonant
	}
	return Other
}

// Marker returns the letter type marker for the class, empty for Other
func (c Class) Marker() string {
	switch c {
	case Vowel:
		return VowelMarker
	case Consonant:
		return ConsonantMarker
	default:
		return ""
	}
}

func (c Class) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	default:
		return "other"
	}
}

// Vector holds the features of one abbreviation
type Vector struct {
	VowelCount                     int
	ConsonantCount                 int
	MaxConsecutiveVowels           int
	MaxConsecutiveConsonants       int
	PatternVowelConsonant          int
	PatternConsonantVowel          int
	PatternVowelConsonantVowel     int
	PatternConsonantVowelConsonant int
	VowelConsonantRatio            float64
	FirstLetterType                string
	LastLetterType                 string
}

// Extract computes the feature vector of an abbreviation.
// It is safe for any input, including the empty string.
func Extract(abbreviation string) Vector {
	runes := []rune(abbreviation)
	classes := make([]Class, len(runes))
	for i, r := range runes {
		classes[i] = Classify(r)
	}

	var v Vector

	// Counts and longest runs. A separator resets both runs.
	currentVowels, currentConsonants := 0, 0
	for _, c := range classes {
		switch c {
		case Vowel:
			v.VowelCount++
			currentVowels++
			currentConsonants = 0
			v.MaxConsecutiveVowels = max(v.MaxConsecutiveVowels, currentVowels)
		case Consonant:
			v.ConsonantCount++
			currentConsonants++
			currentVowels = 0
			v.MaxConsecutiveConsonants = max(v.MaxConsecutiveConsonants, currentConsonants)
		default:
			currentVowels, currentConsonants = 0, 0
		}
	}

	for i := 0; i+1 < len(classes); i++ {
		if classes[i] == Vowel && classes[i+1] == Consonant {
			v.PatternVowelConsonant++
		}
		if classes[i] == Consonant && classes[i+1] == Vowel {
			v.PatternConsonantVowel++
		}
	}

	for i := 0; i+2 < len(classes); i++ {
		if classes[i] == Vowel && classes[i+1] == Consonant && classes[i+2] == Vowel {
			v.PatternVowelConsonantVowel++
		}
		if classes[i] == Consonant && classes[i+1] == Vowel && classes[i+2] == Consonant {
			v.PatternConsonantVowelConsonant++
		}
	}

	// A bigram count is never reported below the matching trigram count.
	v.PatternVowelConsonant = max(v.PatternVowelConsonant, v.PatternVowelConsonantVowel)
	v.PatternConsonantVowel = max(v.PatternConsonantVowel, v.PatternConsonantVowelConsonant)

	if v.ConsonantCount != 0 {
		v.VowelConsonantRatio = float64(v.VowelCount) / float64(v.ConsonantCount)
	}

	if len(classes) > 0 {
		v.FirstLetterType = classes[0].Marker()
		v.LastLetterType = classes[len(classes)-1].Marker()
	}

	return v
}

// ExtractAll computes vectors for every abbreviation, keeping input order
func ExtractAll(abbreviations []string) []Vector {
	out := make([]Vector, len(abbreviations))
	for i, a := range abbreviations {
		out[i] = Extract(a)
	}
	return out
}

// Columns returns the output column names in layout order
func Columns() []string {
	return []string{
		"vowel_count",
		"consonant_count",
		"max_consecutive_vowels",
		"max_consecutive_consonants",
		"pattern_vowel_consonant",
		"pattern_consonant_vowel",
		"pattern_vowel_consonant_vowel",
		"pattern_consonant_vowel_consonant",
		"vowel_consonant_ratio",
		"first_letter_type",
		"last_letter_type",
	}
}

// Values returns the attribute values in the same order as Columns
func (v Vector) Values() []any {
	return []any{
		v.VowelCount,
		v.ConsonantCount,
		v.MaxConsecutiveVowels,
		v.MaxConsecutiveConsonants,
		v.PatternVowelConsonant,
		v.PatternConsonantVowel,
		v.PatternVowelConsonantVowel,
		v.PatternConsonantVowelConsonant,
		v.VowelConsonantRatio,
		v.FirstLetterType,
		v.LastLetterType,
	}
}
