// Package cmd provides the root command and CLI setup for elmscope.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"elmscope.dev/pkg/elmscope/internal/adapter"
	"elmscope.dev/pkg/elmscope/internal/controller"
	"elmscope.dev/pkg/elmscope/internal/domain"
	m "elmscope.dev/pkg/elmscope/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var discoveryAdapter adapter.TestDiscoveryAdapter
var reportStore adapter.ReportStore
var checker domain.Checker
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters module files for applicable commands.
var excludePatterns []string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	discoveryAdapter = adapter.NewLocalTestDiscoveryAdapter(fsAdapter, domain.StripComments)
	reportStore = adapter.NewReportStore(fsAdapter)
	checker = domain.NewChecker(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		discoveryAdapter,
		reportStore,
		ui,
		checker,
	)
}

const pathsHelp = `Paths may name project directories or single .elm files:
  - .                check the current project (tests/ and src/)
  - tests            check one test directory
  - tests/Login.elm  check a single module`

const rootLongDescription = `Elmscope verifies the export surface of your Elm test modules: a test
function that exists in source but is missing from the module's exposing
clause is silently invisible to the test runner. Elmscope finds those
before your CI quietly runs nothing.

` + pathsHelp

const checkLongDescription = `Check that every discovered test is exposed by its module (default:
current directory).

` + pathsHelp

const listLongDescription = `List discovered test modules and their candidate test counts.

` + pathsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elmscope",
		Short: "Elm test export-surface checker",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&verboseFlag, verboseFlagName, viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
