// Package cmd is the top-level "driver" package for the Wabbit compiler: it
// parses command-line arguments, loads project configuration, and runs the
// compilation phases in order.
package cmd

import (
	"os"

	"wabbitc/common"
	"wabbitc/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `wabbitc` CLI utility.
func Execute() {
	// Set up the argument parser and all its commands and arguments.
	cli := olive.NewCLI("wabbitc", "wabbitc is the Wabbit compiler", true)

	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false,
		[]string{"silent", "error", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a Wabbit source file", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the source file to build", true)
	buildCmd.AddStringArg("out", "o", "the path to write output to", false)

	emitArg := buildCmd.AddSelectorArg("emit", "e", "the kind of output to produce", false,
		[]string{"llvm", "ir"})
	emitArg.SetDefaultValue("llvm")

	cli.AddSubcommand("version", "print the Wabbit compiler version", false)

	// Run the argument parser.
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.InitReporter(report.LogLevelError)
		report.ReportFatal("%s", err.Error())
	}

	report.InitReporter(logLevelFromName(result.Arguments["loglevel"].(string)))

	// Process the inputted command line.
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult)
	case "version":
		report.ReportInfoMessage("Wabbit Version", common.WabbitVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all its errors.
func execBuildCommand(result *olive.ArgParseResult) {
	srcPath, _ := result.PrimaryArg()

	cfg := LoadProjectConfig(srcPath)

	if v, ok := result.Arguments["out"]; ok {
		if s, ok := v.(string); ok && s != "" {
			cfg.OutputPath = s
		}
	}

	if v, ok := result.Arguments["emit"]; ok {
		if s, ok := v.(string); ok && s != "" {
			cfg.Emit = s
		}
	}

	c := NewCompiler(srcPath, cfg)
	c.Compile()
}

// logLevelFromName converts a log level selector value to its log level.
func logLevelFromName(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	default:
		return report.LogLevelVerbose
	}
}
