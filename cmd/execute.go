package cmd

import (
	"bitc/common"
	"bitc/report"
	"os"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `bitc` application
func Execute() {
	// the reporter is needed to report usage errors
	report.InitReporter(report.LogLevelVerbose)

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("bitc", "bitc is a tool for checking Bit programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "type check a module or a single package file", true)
	checkCmd.AddPrimaryArg("path", "the path to the module directory or package file", true)
	checkCmd.AddFlag("dump", "d", "dump the resolved tree of the entry package")

	cli.AddSubcommand("builtins", "list the built-in declarations and their slots", false)
	cli.AddSubcommand("version", "print the Bit version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("usage error: %s", err.Error())
	}

	// -1 indicates the log level was not selected on the command line
	logLevel := -1
	if logLvlArg, ok := result.Arguments["loglevel"]; ok {
		logLevel = report.LogLevels[logLvlArg.(string)]
		report.SetLogLevel(logLevel)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, logLevel)
	case "builtins":
		execBuiltinsCommand()
	case "version":
		report.ReportInfo("Bit Version", common.BitVersion)
	}
}

// execCheckCommand executes the check subcommand and handles all errors.  The
// process exits with a non-zero status if the program has errors.
func execCheckCommand(result *olive.ArgParseResult, logLevel int) {
	path, _ := result.PrimaryArg()

	c := NewChecker(path, logLevel)
	if !c.Check() {
		os.Exit(1)
	}

	if result.HasFlag("dump") {
		c.Dump(os.Stdout)
	}
}
