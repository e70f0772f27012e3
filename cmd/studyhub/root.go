package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	envFile     string
	file        string
	backend     string
	metricsFile string
	jsonOutput  bool
	quiet       bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "studyhub",
		Short:         "AI study tools with credential and model failover",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVarP(&flags.file, "file", "f", "", "Document to study (plain text, - for stdin)")
	pf.StringVar(&flags.backend, "backend", "", "Generation backend override (sdk, rest)")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.BoolVar(&flags.jsonOutput, "json", false, "Print results as JSON")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress banner and status lines")

	rootCmd.AddCommand(
		newStatusCommand(ctx),
		newAskCommand(ctx),
		newSummaryCommand(ctx),
		newChatCommand(ctx),
		newQuizCommand(ctx),
		newFlashcardsCommand(ctx),
		newGlossaryCommand(ctx),
		newScriptCommand(ctx),
		newAnalyzeCommand(ctx),
	)

	return rootCmd
}
