package diag

import "setlint/internal/source"

// Reporter принимает диагностики от лексера, парсера и правил.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix)
}

func emit(r Reporter, d Diagnostic) {
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

// ReportBuilder collects notes and fixes for one diagnostic; Emit sends it once.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	done bool
}

// ReportWarning starts a SevWarning diagnostic bound to r.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(SevWarning, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

// WithFixSuggestion attaches fix as is; the same pointer may go to several builders.
func (b *ReportBuilder) WithFixSuggestion(fix *Fix) *ReportBuilder {
	b.d = b.d.WithFixSuggestion(fix)
	return b
}

func (b *ReportBuilder) Emit() {
	if b.done || b.to == nil {
		return
	}
	b.done = true
	emit(b.to, b.d)
}

// BagReporter пишет в Bag; переполнение молча отбрасывается.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
	}
}

type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note, []*Fix) {}

// FilterReporter forwards only diagnostics accepted by Keep.
type FilterReporter struct {
	Next Reporter
	Keep func(code Code, primary source.Span) bool
}

func (r FilterReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix) {
	if r.Next == nil || (r.Keep != nil && !r.Keep(code, primary)) {
		return
	}
	r.Next.Report(code, sev, primary, msg, notes, fixes)
}

// DedupReporter drops a diagnostic already seen with the same code,
// severity, primary span and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]bool
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]bool)}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix) {
	k := dedupKey{code, sev, primary, msg}
	if r.seen[k] {
		return
	}
	r.seen[k] = true
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
