// Package features derives phonotactic descriptors from abbreviation
// strings. Every rune is classified as a vowel, a consonant or a separator,
// and the resulting class sequence is summarised into counts, run lengths,
// bigram/trigram pattern counts, a vowel/consonant ratio and the classes of
// the first and last characters.
package features
