package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/abbrevkit/internal"
)

// Subcommand names
const (
	CmdFilter   = "filter"
	CmdFeatures = "features"
	CmdChunk    = "chunk"
	CmdRun      = "run"
	CmdInspect  = "inspect"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "abbrevkit",
		Short: "Abbreviation dataset builder",
		Long: `abbrevkit prepares a dataset of Russian abbreviations.

It filters raw candidates by their letter structure, derives
phonotactic features for the accepted ones and exports them in
fixed-size JSON chunks for manual transcription.

Examples:
  abbrevkit run                              # filter, features and chunk
  abbrevkit filter --input raw.xlsx          # only split candidates
  abbrevkit chunk --chunk-size 500           # re-chunk output.xlsx
  abbrevkit inspect МГУ ВУЗ                  # print features of tokens`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   CmdFilter,
			Short: "Split raw candidates into matching and non-matching tokens",
			Args:  cobra.NoArgs,
		},
		&cobra.Command{
			Use:   CmdFeatures,
			Short: "Append phonotactic features to the matching tokens",
			Args:  cobra.NoArgs,
		},
		&cobra.Command{
			Use:   CmdChunk,
			Short: "Shuffle matching tokens and write JSON chunk files",
			Args:  cobra.NoArgs,
		},
		&cobra.Command{
			Use:   CmdRun,
			Short: "Run filter, features and chunk in sequence",
			Args:  cobra.NoArgs,
		},
		&cobra.Command{
			Use:   CmdInspect + " TOKEN...",
			Short: "Print the features of the given tokens",
			Args:  cobra.MinimumNArgs(1),
		},
	)

	setupFlags(rootCmd, flags)

	return rootCmd
}

// Subcommand returns the child command with the given name, or nil
func Subcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// General flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.abbrevkit.yaml)")
	pf.StringVarP(&flags.WorkDir, "workdir", "w", flags.WorkDir, "Directory relative paths are resolved against")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text, json or auto")
	pf.StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	// Filter flags
	pf.StringVarP(&flags.FilterInput, "input", "i", flags.FilterInput, "Raw candidates file (.xlsx, .csv, .tsv or .txt)")
	pf.StringVar(&flags.FilterSheet, "input-sheet", "", "Sheet of the raw candidates workbook (default: first sheet)")
	pf.StringVar(&flags.FilterColumn, "input-column", flags.FilterColumn, "Column holding the raw candidates")
	pf.StringVar(&flags.FilterOutput, "filter-output", flags.FilterOutput, "Workbook receiving matching and non-matching tokens")
	pf.IntVar(&flags.MaxLength, "max-length", flags.MaxLength, "Drop tokens longer than this many characters (0 disables)")
	pf.BoolVar(&flags.Normalize, "normalize", flags.Normalize, "Apply Unicode NFC normalization before cleaning")

	// Intermediate workbook flags
	pf.StringVar(&flags.MatchingSheet, "matching-sheet", flags.MatchingSheet, "Sheet name for matching tokens")
	pf.StringVar(&flags.NonMatchingSheet, "non-matching-sheet", flags.NonMatchingSheet, "Sheet name for non-matching tokens")
	pf.StringVar(&flags.TokenColumn, "token-column", flags.TokenColumn, "Header of the token column in the intermediate workbook")

	// Features flags
	pf.StringVar(&flags.FeaturesInput, "features-input", flags.FeaturesInput, "Workbook holding the matching sheet")
	pf.StringVar(&flags.FeaturesOutput, "features-output", flags.FeaturesOutput, "Workbook receiving the featurized table")
	pf.StringVar(&flags.FeaturesSheet, "features-sheet", flags.FeaturesSheet, "Sheet name of the featurized table")

	// Chunk flags
	pf.StringVar(&flags.ChunkInput, "chunk-input", flags.ChunkInput, "Workbook holding the matching sheet")
	pf.StringVarP(&flags.ChunkOutputDir, "output", "o", flags.ChunkOutputDir, "Directory receiving the chunk files")
	pf.IntVar(&flags.ChunkSize, "chunk-size", flags.ChunkSize, "Records per chunk file")
	pf.Int64Var(&flags.ChunkSeed, "seed", flags.ChunkSeed, "Shuffle seed")
	pf.BoolVar(&flags.ChunkArchive, "archive", flags.ChunkArchive, "Archive an existing chunk directory instead of replacing it")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	bindings := map[string]string{
		"workdir":             "workdir",
		"log.level":           "log-level",
		"log.format":          "log-format",
		"metrics.file":        "metrics-file",
		"filter.input":        "input",
		"filter.sheet":        "input-sheet",
		"filter.column":       "input-column",
		"filter.output":       "filter-output",
		"filter.max_length":   "max-length",
		"filter.normalize":    "normalize",
		"sheets.matching":     "matching-sheet",
		"sheets.non_matching": "non-matching-sheet",
		"sheets.column":       "token-column",
		"features.input":      "features-input",
		"features.output":     "features-output",
		"features.sheet":      "features-sheet",
		"chunk.input":         "chunk-input",
		"chunk.output_dir":    "output",
		"chunk.size":          "chunk-size",
		"chunk.seed":          "seed",
		"chunk.archive":       "archive",
	}
	pf := cmd.PersistentFlags()
	for key, name := range bindings {
		bindFlag(key, pf.Lookup(name))
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flag %s: %v\n", flag.Name, err)
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env file in the working directory feeds the environment lookups below
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".abbrevkit" (without extension)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".abbrevkit")
	}

	// Environment variables: ABBREVKIT_CHUNK_SIZE overrides chunk.size
	viper.SetEnvPrefix("ABBREVKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
