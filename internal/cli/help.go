package cli

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/gradecheck/internal/exercise"
)

const (
	helpFlagWidth    = 18 // Width for flags like "--var <name=value>"
	helpCommandWidth = 10 // Width for command names
	helpEnvWidth     = 22 // Width for environment variable names
)

func (a *app) printUsage() {
	w := a.out

	w.HelpTitle("gradecheck - grade exercise solutions against expected values")

	w.HelpSection("Usage:")
	w.HelpUsage("gradecheck <command> [options] <file>...")

	w.HelpSection("Commands:")
	w.HelpFlag("run", "Run exercise files and print feedback", helpCommandWidth)
	w.HelpFlag("validate", "Check exercise files without running them", helpCommandWidth)
	w.HelpFlag("phrases", "List the congratulation phrases", helpCommandWidth)
	w.HelpFlag("version", "Show version information", helpCommandWidth)
	w.HelpFlag("help", "Show this help", helpCommandWidth)

	a.printEnvironment()

	w.HelpSection("Examples:")
	w.HelpExample("gradecheck run exercise.yaml", "Run an exercise")
	w.HelpExample("gradecheck run --var x=4 exercise.yaml", "Run with an extra binding")
	w.HelpExample("gradecheck validate exercises/*.yaml", "Validate several files")
	w.Println("")
}

func (a *app) printRunUsage() {
	w := a.out

	w.HelpTitle("gradecheck run - run exercise files")

	w.HelpSection("Usage:")
	w.HelpUsage("gradecheck run [options] <file>...")

	w.HelpSection("Description:")
	w.Println("  Evaluates every test of each file in order. Failed tests print the")
	w.Println("  message with the expected and actual values; a summary line follows.")
	w.Println("  Accepted extensions: %s.", joinNames(exercise.Extensions))

	w.HelpSection("Options:")
	w.HelpFlag("--var <name=value>", "Add or override a binding (repeatable)", helpFlagWidth)
	w.HelpFlag("--json", "Print the run reports as JSON", helpFlagWidth)
	w.HelpFlag("-q, --quiet", "Print only the summary lines", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)

	w.HelpSection("Exit Codes:")
	w.HelpFlag("0", "Every test passed", 2)
	w.HelpFlag("1", "At least one test failed", 2)
	w.HelpFlag("2", "Invalid exercise, expression or invocation", 2)

	a.printEnvironment()

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	for _, kind := range []string{exercise.KindRounded, exercise.KindTolerance, exercise.KindPredicate} {
		w.HelpExample(fmt.Sprintf("gradecheck run %s.yaml", kind), fmt.Sprintf("%s comparison example", titleCase.String(kind)))
	}
	w.Println("")
}

func (a *app) printValidateUsage() {
	w := a.out

	w.HelpTitle("gradecheck validate - check exercise files")

	w.HelpSection("Usage:")
	w.HelpUsage("gradecheck validate <file>...")

	w.HelpSection("Description:")
	w.Println("  Validates each file against the exercise schema, resolves $file")
	w.Println("  references and compiles comparator expressions. Nothing is run.")
	w.Println("")
}

func (a *app) printPhrasesUsage() {
	w := a.out

	w.HelpTitle("gradecheck phrases - list congratulation phrases")

	w.HelpSection("Usage:")
	w.HelpUsage("gradecheck phrases")
	w.Println("")
}

func (a *app) printEnvironment() {
	w := a.out
	w.HelpSection("Environment:")
	w.HelpEnvVar("GRADECHECK_WRAP_WIDTH", "Wrap column for failure messages (default 79)", helpEnvWidth)
	w.HelpEnvVar("GRADECHECK_PLACES", "Decimal places of the default comparison (default 2)", helpEnvWidth)
	w.HelpEnvVar("GRADECHECK_QUIET", "Print only the summary lines", helpEnvWidth)
	w.HelpEnvVar("NO_COLOR", "Disable colors", helpEnvWidth)
	w.HelpEnvVar("GRADECHECK_NO_COLOR", "Disable colors", helpEnvWidth)
}
