package fix

import (
	"setlint/internal/diag"
	"setlint/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// WithRequiresAll marks a fix that is only applied by an --all run.
func WithRequiresAll() Option {
	return func(f *diag.Fix) {
		f.RequiresAll = true
	}
}

// WithThunk attaches lazy builder to fix.
func WithThunk(thunk diag.FixThunk) Option {
	return func(f *diag.Fix) {
		f.Thunk = thunk
	}
}

// Возвращаем указатель: один и тот же *diag.Fix можно прикрепить к
// нескольким диагностикам, движок применит его один раз.
func build(title string, kind diag.FixKind, app diag.FixApplicability, edits []diag.TextEdit, opts []Option) *diag.Fix {
	f := &diag.Fix{
		Title:         title,
		Kind:          kind,
		Applicability: app,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) *diag.Fix {
	edit := diag.TextEdit{
		Span:    span,
		NewText: "",
		OldText: expect,
	}
	return build(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe, []diag.TextEdit{edit}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) *diag.Fix {
	edit := diag.TextEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}
	return build(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe, []diag.TextEdit{edit}, opts)
}
