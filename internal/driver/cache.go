package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache хранит диагностики файла по хэшу содержимого и набора правил.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file. Spans are stored
// as offsets; the FileID is re-attached on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
	// Fixes is a table shared by all diagnostics so that one fix attached to
	// several diagnostics comes back as one *diag.Fix.
	Fixes []CachedFix
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	FixRefs  []int
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type CachedFix struct {
	ID            string
	Title         string
	Kind          uint8
	Applicability uint8
	Preferred     bool
	RequiresAll   bool
	Edits         []CachedEdit
}

type CachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens (creating if needed) a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey: H(schema || fingerprint || max || path || content hash).
// The path is part of the key because fix IDs embed it.
func CacheKey(file *source.File, fingerprint string, maxDiagnostics int) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	binary.LittleEndian.PutUint64(buf[:], uint64(max(maxDiagnostics, 0))) // #nosec G115 -- clamped to non-negative
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(file.Path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(file.Hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload with
// a foreign schema counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// bagToPayload flattens diagnostics; fixes that fail to resolve are dropped
// from the cached copy.
func bagToPayload(path string, bag *diag.Bag, fs *source.FileSet) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Path: path}
	refs := make(map[*diag.Fix]int)
	ctx := diag.FixBuildContext{FileSet: fs}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			idx, ok := refs[f]
			if !ok {
				resolved, err := f.Resolve(ctx)
				if err != nil {
					continue
				}
				idx = len(payload.Fixes)
				refs[f] = idx
				payload.Fixes = append(payload.Fixes, fixToCached(resolved))
			}
			cd.FixRefs = append(cd.FixRefs, idx)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

func fixToCached(f diag.Fix) CachedFix {
	cf := CachedFix{
		ID:            f.ID,
		Title:         f.Title,
		Kind:          uint8(f.Kind),
		Applicability: uint8(f.Applicability),
		Preferred:     f.IsPreferred,
		RequiresAll:   f.RequiresAll,
	}
	for _, e := range f.Edits {
		cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText})
	}
	return cf
}

// payloadToBag restores diagnostics against fileID.
func payloadToBag(payload *DiskPayload, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	span := func(start, end uint32) source.Span {
		return source.Span{File: fileID, Start: start, End: end}
	}
	fixes := make([]*diag.Fix, len(payload.Fixes))
	for i, cf := range payload.Fixes {
		f := &diag.Fix{
			ID:            cf.ID,
			Title:         cf.Title,
			Kind:          diag.FixKind(cf.Kind),
			Applicability: diag.FixApplicability(cf.Applicability),
			IsPreferred:   cf.Preferred,
			RequiresAll:   cf.RequiresAll,
		}
		for _, e := range cf.Edits {
			f.Edits = append(f.Edits, diag.TextEdit{Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText})
		}
		fixes[i] = f
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, ref := range cd.FixRefs {
			if ref >= 0 && ref < len(fixes) {
				d = d.WithFixSuggestion(fixes[ref])
			}
		}
		bag.Add(d)
	}
	return bag
}
