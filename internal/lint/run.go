package lint

import (
	"context"
	"errors"
	"fmt"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/source"
)

// Options configures Run.
type Options struct {
	// Rules to run; nil means every registered rule.
	Rules    []*Rule
	Reporter diag.Reporter
	// Noqa suppresses rule diagnostics on lines marked with # noqa. A nil
	// table suppresses nothing.
	Noqa Noqa
}

// Run walks every expression of file and dispatches set displays to the
// rules. Rule failures do not stop the walk: each is wrapped with the rule
// identifier and returned joined.
func Run(ctx context.Context, b *ast.Builder, fileID ast.FileID, file *source.File, opts Options) error {
	rules := opts.Rules
	if rules == nil {
		rules = Rules()
	}
	var setRules []*Rule
	for _, r := range rules {
		if r.CheckSet != nil {
			setRules = append(setRules, r)
		}
	}
	if len(setRules) == 0 {
		return nil
	}

	var reporter diag.Reporter = diag.NopReporter{}
	if opts.Reporter != nil {
		reporter = opts.Reporter
	}
	if opts.Noqa != nil {
		reporter = diag.FilterReporter{
			Next: reporter,
			Keep: func(code diag.Code, primary source.Span) bool {
				return !opts.Noqa.Suppresses(code, file.Position(primary.Start).Line)
			},
		}
	}
	lctx := NewContext(b, file, reporter)

	var errs []error
	ast.Inspect(b, fileID, func(id ast.ExprID) bool {
		if ctx.Err() != nil {
			return false
		}
		set, ok := b.Exprs.Set(id)
		if !ok {
			return true
		}
		for _, r := range setRules {
			if err := r.CheckSet(lctx, id, set); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", r.ID(), err))
			}
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
