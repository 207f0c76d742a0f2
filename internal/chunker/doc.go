// Package chunker shuffles the accepted abbreviations with a fixed seed,
// partitions them into fixed-size groups and writes each group as a JSON
// file of records awaiting manual transcription.
package chunker
