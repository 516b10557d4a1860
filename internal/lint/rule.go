package lint

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"setlint/internal/ast"
	"setlint/internal/diag"
)

// Rule describes one lint. Rules register themselves from init.
type Rule struct {
	Code    diag.Code
	Name    string
	Summary string
	// Fixable is true when the rule attaches fixes to its diagnostics.
	Fixable bool
	// CheckSet runs on every set display ({a, b}); comprehensions are not
	// set displays.
	CheckSet func(ctx *Context, id ast.ExprID, set *ast.ExprSetData) error
}

// ID is the public identifier of the rule ("B033").
func (r *Rule) ID() string {
	return r.Code.ID()
}

var (
	registryMu sync.RWMutex
	registry   = map[diag.Code]*Rule{}
)

// Register adds r to the global registry. Registering two rules under one
// code is a programming error.
func Register(r *Rule) {
	if r == nil || !r.Code.IsRule() {
		panic("lint: register of invalid rule")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[r.Code]; dup {
		panic(fmt.Sprintf("lint: rule %s registered twice", r.ID()))
	}
	registry[r.Code] = r
}

// Rules returns every registered rule ordered by identifier.
func Rules() []*Rule {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Rule, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *Rule) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}

// Lookup finds a rule by its public identifier, case-insensitively.
func Lookup(id string) (*Rule, bool) {
	code, ok := diag.LookupID(strings.ToUpper(strings.TrimSpace(id)))
	if !ok {
		return nil, false
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[code]
	return r, ok
}

// Select resolves select/ignore lists into the active rule set. An empty
// selection means every registered rule. Unknown identifiers are returned
// separately so callers can warn about them.
func Select(selected, ignored []string) (rules []*Rule, unknown []string) {
	active := map[diag.Code]bool{}
	if len(selected) == 0 {
		for _, r := range Rules() {
			active[r.Code] = true
		}
	}
	for _, id := range selected {
		r, ok := Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		active[r.Code] = true
	}
	for _, id := range ignored {
		r, ok := Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		delete(active, r.Code)
	}
	for _, r := range Rules() {
		if active[r.Code] {
			rules = append(rules, r)
		}
	}
	return rules, unknown
}

// Fingerprint identifies a rule selection; cached results are only valid
// for the same fingerprint.
func Fingerprint(rules []*Rule) string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID()
	}
	return strings.Join(ids, ",")
}
