package cli

import (
	"github.com/spf13/viper"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	WorkDir     string
	LogLevel    string
	LogFormat   string
	MetricsFile string

	// Filter stage
	FilterInput  string
	FilterSheet  string
	FilterColumn string
	FilterOutput string
	MaxLength    int
	Normalize    bool

	// Intermediate workbook layout
	MatchingSheet    string
	NonMatchingSheet string
	TokenColumn      string

	// Features stage
	FeaturesInput  string
	FeaturesOutput string
	FeaturesSheet  string

	// Chunk stage
	ChunkInput     string
	ChunkOutputDir string
	ChunkSize      int
	ChunkSeed      int64
	ChunkArchive   bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		WorkDir:   ".",
		LogLevel:  "info",
		LogFormat: "auto",

		FilterInput:  "dataset/result_abbreviation_data.xlsx",
		FilterColumn: "Аббревиатура",
		FilterOutput: "output.xlsx",
		MaxLength:    6,
		Normalize:    true,

		MatchingSheet:    "Соответствуют",
		NonMatchingSheet: "Не соответствуют",
		TokenColumn:      "Аббревиатура",

		FeaturesInput:  "output.xlsx",
		FeaturesOutput: "output_with_features.xlsx",
		FeaturesSheet:  "Sheet1",

		ChunkInput:     "output.xlsx",
		ChunkOutputDir: "json_output",
		ChunkSize:      1000,
		ChunkSeed:      42,
		ChunkArchive:   true,
	}
}

// Resolve overlays config file and environment values onto the flags.
// Flags set on the command line win because they are bound to viper.
func (f *Flags) Resolve() {
	setString(&f.WorkDir, "workdir")
	setString(&f.LogLevel, "log.level")
	setString(&f.LogFormat, "log.format")
	setString(&f.MetricsFile, "metrics.file")

	setString(&f.FilterInput, "filter.input")
	setString(&f.FilterSheet, "filter.sheet")
	setString(&f.FilterColumn, "filter.column")
	setString(&f.FilterOutput, "filter.output")
	if viper.IsSet("filter.max_length") {
		f.MaxLength = viper.GetInt("filter.max_length")
	}
	if viper.IsSet("filter.normalize") {
		f.Normalize = viper.GetBool("filter.normalize")
	}

	setString(&f.MatchingSheet, "sheets.matching")
	setString(&f.NonMatchingSheet, "sheets.non_matching")
	setString(&f.TokenColumn, "sheets.column")

	setString(&f.FeaturesInput, "features.input")
	setString(&f.FeaturesOutput, "features.output")
	setString(&f.FeaturesSheet, "features.sheet")

	setString(&f.ChunkInput, "chunk.input")
	setString(&f.ChunkOutputDir, "chunk.output_dir")
	if viper.IsSet("chunk.size") {
		f.ChunkSize = viper.GetInt("chunk.size")
	}
	if viper.IsSet("chunk.seed") {
		f.ChunkSeed = viper.GetInt64("chunk.seed")
	}
	if viper.IsSet("chunk.archive") {
		f.ChunkArchive = viper.GetBool("chunk.archive")
	}
}

func setString(dst *string, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}
