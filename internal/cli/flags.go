package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/gradecheck/internal/exercise"
)

var bindingNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// runOptions holds the parsed flags of the run command.
type runOptions struct {
	Vars  map[string]any
	JSON  bool
	Quiet bool
	Files []string
}

// parseRunFlags manually parses run flags. Flags may appear anywhere; every
// argument after -- is a file.
func parseRunFlags(args []string) (*runOptions, error) {
	opts := &runOptions{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--json":
			opts.JSON = true
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
		case arg == "--var":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--var requires a value")
			}
			i++
			if err := opts.addVar(args[i]); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "--var="):
			if err := opts.addVar(strings.TrimPrefix(arg, "--var=")); err != nil {
				return nil, err
			}
		case arg == "--":
			opts.Files = append(opts.Files, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			opts.Files = append(opts.Files, arg)
		}
	}

	return opts, nil
}

// addVar parses name=value. The value is a YAML scalar or flow collection.
func (o *runOptions) addVar(spec string) error {
	name, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("invalid --var %q\n  expected: name=value\n  example: --var x=4", spec)
	}
	if !bindingNamePattern.MatchString(name) {
		return fmt.Errorf("invalid --var name %q (must match %s)", name, bindingNamePattern)
	}
	value, err := exercise.ParseValue(raw)
	if err != nil {
		return fmt.Errorf("invalid --var value for %s: %w", name, err)
	}
	if o.Vars == nil {
		o.Vars = make(map[string]any)
	}
	o.Vars[name] = value
	return nil
}

// parseFileArgs accepts only file arguments.
func parseFileArgs(args []string) ([]string, error) {
	var files []string
	for i, arg := range args {
		if arg == "--" {
			return append(files, args[i+1:]...), nil
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
		files = append(files, arg)
	}
	return files, nil
}
