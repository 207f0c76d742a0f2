package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/abbrevkit/internal/cli"
	"codeberg.org/snonux/abbrevkit/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Wire the stage commands
	stages := map[string]func(*processor.Processor, []string) error{
		cli.CmdFilter: func(p *processor.Processor, _ []string) error {
			_, err := p.Filter()
			return err
		},
		cli.CmdFeatures: func(p *processor.Processor, _ []string) error {
			_, err := p.Features()
			return err
		},
		cli.CmdChunk: func(p *processor.Processor, _ []string) error {
			_, err := p.Chunk()
			return err
		},
		cli.CmdRun: func(p *processor.Processor, _ []string) error {
			return p.Run()
		},
		cli.CmdInspect: func(p *processor.Processor, args []string) error {
			fmt.Println(p.Inspect(args))
			return nil
		},
	}
	for name, stage := range stages {
		stage := stage
		cli.Subcommand(rootCmd, name).RunE = func(cmd *cobra.Command, args []string) error {
			return runStage(flags, args, stage)
		}
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStage(flags *cli.Flags, args []string, stage func(*processor.Processor, []string) error) error {
	flags.Resolve()

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	if err := stage(proc, args); err != nil {
		return err
	}
	return proc.Finish()
}
