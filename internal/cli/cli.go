// Package cli provides the command-line interface for gradecheck.
package cli

import (
	"io"
	"os"

	"github.com/AndreyAkinshin/gradecheck/internal/config"
	"github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/internal/output"
)

// Version is set at build time.
var Version = "dev"

// app carries the streams and environment of one invocation.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	environ map[string]string // Nil reads the process environment
	out     *output.Writer
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		out:    output.New(),
	}
	return a.run(args)
}

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return errors.ExitSuccess
	}

	cmd, cmdArgs := args[0], args[1:]

	switch cmd {
	case "-h", "--help", "help":
		a.printUsage()
		return errors.ExitSuccess
	case "--version", "version":
		a.out.Println("gradecheck %s", Version)
		return errors.ExitSuccess
	}

	settings, err := a.loadSettings()
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if settings.ColorDisabled() {
		a.out.SetColor(false)
	}

	switch cmd {
	case "run":
		return a.cmdRun(cmdArgs, settings)
	case "validate":
		return a.cmdValidate(cmdArgs, settings)
	case "phrases":
		return a.cmdPhrases(cmdArgs)
	default:
		a.out.ErrorPrefix("unknown command: %s", cmd)
		a.out.Errorln("Run 'gradecheck help' for usage.")
		return errors.ExitConfigError
	}
}

func (a *app) loadSettings() (*config.Settings, error) {
	if a.environ != nil {
		return config.LoadFrom(a.environ)
	}
	return config.Load()
}

// fail reports err and returns its exit code.
func (a *app) fail(err error) int {
	a.out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}
