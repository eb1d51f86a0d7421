package cli

import (
	"encoding/json"
	"io"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/AndreyAkinshin/gradecheck/internal/config"
	"github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/internal/exercise"
	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

// cmdRun runs exercise files and prints feedback for each test.
func (a *app) cmdRun(args []string, settings *config.Settings) int {
	if wantsHelp(args) {
		a.printRunUsage()
		return errors.ExitSuccess
	}

	opts, err := parseRunFlags(args)
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(opts.Files) == 0 {
		a.out.ErrorPrefix("run requires at least one exercise file")
		a.out.Errorln("Run 'gradecheck run --help' for usage.")
		return errors.ExitConfigError
	}

	a.out.SetQuiet(settings.Quiet || opts.Quiet)

	var reports []*check.Report
	failed := false
	for i, path := range opts.Files {
		ex, err := exercise.Load(path)
		if err != nil {
			return a.fail(err)
		}
		specs, err := ex.Specs(settings.Places)
		if err != nil {
			return a.fail(err)
		}
		a.warnUnusedVars(ex, opts.Vars)

		if !opts.JSON && len(opts.Files) > 1 {
			if i > 0 {
				a.out.Println("")
			}
			a.out.Section(ex.DisplayName())
		}

		report, err := check.Run(specs, ex.BindingsWith(opts.Vars), a.checkOptions(ex, settings, opts)...)
		if err != nil {
			return a.fail(errors.InFile(err, path))
		}
		reports = append(reports, report)
		if !report.OK() {
			failed = true
		}
	}

	if opts.JSON {
		if err := writeJSON(a.stdout, reports); err != nil {
			return a.fail(errors.Wrap(err, "cannot encode report"))
		}
	}

	if failed {
		return errors.ExitFailure
	}
	return errors.ExitSuccess
}

func (a *app) checkOptions(ex *exercise.Exercise, settings *config.Settings, opts *runOptions) []check.Option {
	var w io.Writer = a.stdout
	if opts.JSON {
		w = io.Discard
	}
	result := []check.Option{
		check.WithOutput(w),
		check.WithColor(a.out.Color()),
		check.WithQuiet(settings.Quiet || opts.Quiet),
		check.WithWidth(settings.WrapWidth),
		check.WithPlaces(settings.Places),
	}
	return append(result, ex.Options()...)
}

// warnUnusedVars flags --var names that no test expression refers to.
func (a *app) warnUnusedVars(ex *exercise.Exercise, vars map[string]any) {
	if len(vars) == 0 {
		return
	}
	used := ex.Identifiers()
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		if !slices.Contains(used, name) {
			a.out.Warning("--var %s is not used by any test in %s", name, ex.DisplayName())
		}
	}
}

// cmdValidate loads and converts exercise files without running them.
func (a *app) cmdValidate(args []string, settings *config.Settings) int {
	if wantsHelp(args) {
		a.printValidateUsage()
		return errors.ExitSuccess
	}

	files, err := parseFileArgs(args)
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(files) == 0 {
		a.out.ErrorPrefix("validate requires at least one exercise file")
		return errors.ExitConfigError
	}

	for _, path := range files {
		ex, err := exercise.Load(path)
		if err != nil {
			return a.fail(err)
		}
		specs, err := ex.Specs(settings.Places)
		if err != nil {
			return a.fail(err)
		}
		a.out.ValidationSuccess("%s: %d %s", path, len(specs), plural(len(specs), "test", "tests"))
	}
	return errors.ExitSuccess
}

// cmdPhrases lists the congratulation phrases.
func (a *app) cmdPhrases(args []string) int {
	if wantsHelp(args) {
		a.printPhrasesUsage()
		return errors.ExitSuccess
	}
	if len(args) > 0 {
		a.out.ErrorPrefix("phrases takes no arguments")
		return errors.ExitConfigError
	}
	a.out.List(check.Phrases)
	return errors.ExitSuccess
}

func writeJSON(w io.Writer, reports []*check.Report) error {
	safe := make([]*check.Report, len(reports))
	for i, r := range reports {
		cp := *r
		cp.Outcomes = make([]check.Outcome, len(r.Outcomes))
		for j, o := range r.Outcomes {
			o.Expected = jsonSafe(o.Expected)
			o.Actual = jsonSafe(o.Actual)
			cp.Outcomes[j] = o
		}
		safe[i] = &cp
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(safe)
}

// jsonSafe replaces NaN and infinite floats, which JSON cannot represent,
// with the strings the comparators accept for them.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case float64:
		return jsonSafeFloat(x)
	case float32:
		return jsonSafeFloat(float64(x))
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	}
	return v
}

func jsonSafeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinNames formats a list for help text.
func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
