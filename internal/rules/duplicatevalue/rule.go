// Package duplicatevalue implements B033: a set display that lists the same
// literal more than once.
//
// Only literals are compared: two calls or names that look alike may still
// evaluate differently (or have side effects), so they are never flagged.
package duplicatevalue

import (
	"fmt"

	"setlint/internal/ast"
	"setlint/internal/comparable"
	"setlint/internal/diag"
	"setlint/internal/fix"
	"setlint/internal/lint"
)

func init() {
	lint.Register(Rule)
}

// Rule is the registered B033 definition.
var Rule = &lint.Rule{
	Code:     code,
	Name:     "duplicate-value",
	Summary:  "Sets should not contain duplicate items",
	Fixable:  true,
	CheckSet: check,
}

// code дублирует Rule.Code: check не может читать Rule, иначе цикл инициализации.
const code = diag.LintDuplicateSetValue

// Один фикс на литерал общий для всех его дубликатов, поэтому заголовок
// во множественном числе; конкретное значение называет заметка.
const fixTitle = "Remove duplicate items"

func check(ctx *lint.Context, id ast.ExprID, set *ast.ExprSetData) error {
	res := scan(ctx, set.Elts)
	if len(res.duplicate) == 0 {
		return nil
	}
	shared, err := synthesizeFix(ctx, id, set.Elts, res.unique)
	if err != nil {
		return err
	}
	return emit(ctx, set.Elts, res.duplicate, shared)
}

// scanResult holds element indices in source order.
type scanResult struct {
	unique    []int
	duplicate []int
}

// scan splits elts into first occurrences and repeats. Non-literal elements
// are always unique.
func scan(ctx *lint.Context, elts []ast.ExprID) scanResult {
	var res scanResult
	seen := make(map[comparable.Key]struct{}, len(elts))
	for i, elt := range elts {
		if !ctx.IsLiteral(elt) {
			res.unique = append(res.unique, i)
			continue
		}
		key := ctx.Key(elt)
		if _, dup := seen[key]; dup {
			res.duplicate = append(res.duplicate, i)
			continue
		}
		seen[key] = struct{}{}
		res.unique = append(res.unique, i)
	}
	return res
}

// synthesizeFix builds the one fix shared by every diagnostic of the set:
// the whole display is replaced by a display of its unique elements.
func synthesizeFix(ctx *lint.Context, id ast.ExprID, elts []ast.ExprID, unique []int) (*diag.Fix, error) {
	kept := make([]ast.ExprID, len(unique))
	for i, idx := range unique {
		kept[i] = elts[idx]
	}
	text, err := ctx.SetText(kept)
	if err != nil {
		return nil, err
	}
	span := ctx.Span(id)
	return fix.ReplaceSpan(fixTitle, span, text, ctx.Source(span),
		fix.WithID(ctx.FixID(code, span)),
		fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
		fix.Preferred(),
	), nil
}

// emit reports one warning per repeat, in source order, all pointing at the
// same *diag.Fix.
func emit(ctx *lint.Context, elts []ast.ExprID, duplicate []int, shared *diag.Fix) error {
	for _, idx := range duplicate {
		elt := elts[idx]
		value, err := ctx.Text(elt)
		if err != nil {
			return err
		}
		span := ctx.Span(elt)
		diag.ReportWarning(ctx.Reporter, code, span,
			fmt.Sprintf("Sets should not contain duplicate item `%s`", value)).
			WithNote(span, fmt.Sprintf("Remove duplicate item `%s`", value)).
			WithFixSuggestion(shared).
			Emit()
	}
	return nil
}
