package check

import (
	gcerrors "github.com/AndreyAkinshin/gradecheck/internal/errors"
)

// Report is the result of a Run.
type Report struct {
	Exercise string    `json:"exercise,omitempty"`
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Phrase   string    `json:"phrase,omitempty"` // Set only when every test passed
	Outcomes []Outcome `json:"outcomes"`
}

// OK reports whether every test passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Run evaluates specs in order and prints a summary line. Failed tests are
// counted and never stop the run; the first invalid spec aborts it with an
// error annotated with the spec's 1-based index.
func Run(specs []Spec, bindings Bindings, opts ...Option) (*Report, error) {
	s := newSettings(opts)

	report := &Report{
		Exercise: s.exercise,
		Total:    len(specs),
		Outcomes: make([]Outcome, 0, len(specs)),
	}

	for i, spec := range specs {
		o, err := evaluate(spec, bindings, s)
		if err != nil {
			return nil, gcerrors.AtTest(err, i+1)
		}
		o.Index = i + 1
		report.Outcomes = append(report.Outcomes, o)
		if o.Passed {
			report.Passed++
		} else {
			report.Failed++
			s.out.Separator()
		}
	}

	if report.Failed > 0 {
		s.out.FinalFailure("%d %s occurred! Please check the error messages above and your solution!",
			report.Failed, plural(report.Failed, "error", "errors"))
		return report, nil
	}

	report.Phrase = s.phrase
	if report.Phrase == "" {
		report.Phrase = Phrase(s.exercise, specs)
	}
	s.out.FinalSuccess("%d tests passed. %s", report.Total, report.Phrase)
	return report, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
