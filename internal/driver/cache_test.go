package driver

import (
	"testing"

	"setlint/internal/diag"
	"setlint/internal/source"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.py", []byte("x = {1, 1}\n")))
	key := CacheKey(file, "B033", 100)

	var out DiskPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Diagnostics: []CachedDiagnostic{{
			Severity: uint8(diag.SevWarning), Code: uint16(diag.LintDuplicateSetValue),
			Message: "dup", Start: 8, End: 9, FixRefs: []int{0},
		}},
		Fixes: []CachedFix{{ID: "B033@a.py:4-10", Title: "Remove duplicate items", Edits: []CachedEdit{{Start: 4, End: 10, NewText: "{1}"}}}},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	hit, err := cache.Get(key, &out)
	if !hit || err != nil {
		t.Fatalf("Get after Put: hit=%v err=%v", hit, err)
	}
	if out.Path != "a.py" || len(out.Diagnostics) != 1 || out.Fixes[0].Edits[0].NewText != "{1}" {
		t.Errorf("payload changed in the cache: %+v", out)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Error("entry survived DropAll")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.py", []byte("x = {1, 1}\n")))
	b := fs.Get(fs.AddVirtual("b.py", []byte("x = {1, 1}\n")))
	a2 := fs.Get(fs.AddVirtual("a.py", []byte("x = {1, 2}\n")))

	base := CacheKey(a, "B033", 100)
	for name, other := range map[string]Digest{
		"path":        CacheKey(b, "B033", 100),
		"content":     CacheKey(a2, "B033", 100),
		"fingerprint": CacheKey(a, "", 100),
		"max":         CacheKey(a, "B033", 10),
	} {
		if other == base {
			t.Errorf("key ignores %s", name)
		}
	}
	if CacheKey(a, "B033", 100) != base {
		t.Error("key is not deterministic")
	}
}

func TestPayloadRoundTripKeepsSharing(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.py", []byte("x = {1, 1, 1}\n"))
	shared := &diag.Fix{ID: "shared", Title: "t", Edits: []diag.TextEdit{{Span: source.Span{File: id, Start: 4, End: 13}, NewText: "{1}"}}}
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LintDuplicateSetValue, source.Span{File: id, Start: 8, End: 9}, "a").WithFixSuggestion(shared))
	bag.Add(diag.New(diag.SevWarning, diag.LintDuplicateSetValue, source.Span{File: id, Start: 11, End: 12}, "b").WithFixSuggestion(shared))

	payload := bagToPayload("a.py", bag, fs)
	if len(payload.Fixes) != 1 {
		t.Fatalf("shared fix stored %d times", len(payload.Fixes))
	}
	restored := payloadToBag(payload, id, 10).Items()
	if len(restored) != 2 || restored[0].Fixes[0] != restored[1].Fixes[0] {
		t.Fatalf("sharing lost: %+v", restored)
	}
	if restored[1].Primary != (source.Span{File: id, Start: 11, End: 12}) {
		t.Errorf("span = %+v", restored[1].Primary)
	}
}
