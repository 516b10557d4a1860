package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lint"
	"setlint/internal/logx"
	"setlint/internal/observ"
	"setlint/internal/parser"
	"setlint/internal/source"
)

// Options configures Check and CheckFile.
type Options struct {
	// Rules to run; nil means every registered rule.
	Rules          []*lint.Rule
	MaxDiagnostics int
	// Jobs bounds the number of files checked at once; <= 0 means GOMAXPROCS.
	Jobs    int
	Cache   *DiskCache
	Logger  *slog.Logger
	Sink    ProgressSink
	Exclude func(rel string) bool
	// Timings records a per-file phase report.
	Timings bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logx.Discard()
}

func (o Options) rules() []*lint.Rule {
	if o.Rules != nil {
		return o.Rules
	}
	return lint.Rules()
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
	Timing *observ.Report
}

// CheckResult holds every file of a run. The FileSet is read-only once
// Check returns; fix.Apply consumes it together with the diagnostics.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Bag merges all per-file bags, sorted and deduplicated, into one bag.
// A positive limit keeps only the first limit diagnostics after sorting.
func (r *CheckResult) Bag(limit int) *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		if f.Bag != nil {
			out.Merge(f.Bag)
		}
	}
	out.Sort()
	out.Dedup()
	if limit > 0 && out.Len() > limit {
		n := 0
		out.Filter(func(diag.Diagnostic) bool {
			n++
			return n <= limit
		})
	}
	return out
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *CheckResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		if f.Bag != nil {
			out = append(out, f.Bag.Items()...)
		}
	}
	return out
}

// Check loads every Python file under targets and checks them in parallel.
// A file that cannot be read yields an IO4001 diagnostic; it does not stop
// the run. The returned error is non-nil only for walk failures and
// cancellation.
func Check(ctx context.Context, targets []string, opts Options) (*CheckResult, error) {
	log := opts.logger()
	fileSet := source.NewFileSetWithBase(baseDir(targets))

	var paths []string
	for _, target := range targets {
		files, err := ListFiles(target, opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		for _, f := range files {
			// тот же вид, что у source.File.Path, чтобы события совпадали
			paths = append(paths, filepath.ToSlash(filepath.Clean(f)))
		}
	}

	// Предзагружаем все файлы: после этого FileSet только читается.
	ids := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			id = fileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
	}
	log.Info("check started", "files", len(paths), "rules", lint.Fingerprint(opts.rules()))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(paths)), 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: ids[i]},
					"failed to load file: "+loadErrs[i].Error()))
				log.Warn("load failed", "file", path, "err", loadErrs[i])
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErrs[i]})
				results[i] = FileResult{Path: path, FileID: ids[i], Bag: bag}
				return nil
			}
			res, err := checkLoaded(gctx, fileSet, ids[i], opts)
			if err != nil {
				emit(opts.Sink, Event{File: path, Stage: StageLint, Status: StatusError, Err: err})
				return err
			}
			res.Path = path
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &CheckResult{FileSet: fileSet, Files: results}, err
	}
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	log.Info("check finished", "files", len(paths), "cache_hits", cached)
	return &CheckResult{FileSet: fileSet, Files: results}, nil
}

// CheckFile runs the pipeline on a file already present in fileSet.
func CheckFile(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, opts Options) (FileResult, error) {
	if fileSet.Get(fileID) == nil {
		return FileResult{}, fmt.Errorf("file %d not found in FileSet", fileID)
	}
	res, err := checkLoaded(ctx, fileSet, fileID, opts)
	res.Path = fileSet.Get(fileID).Path
	return res, err
}

func checkLoaded(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, opts Options) (FileResult, error) {
	log := opts.logger()
	file := fileSet.Get(fileID)
	rules := opts.rules()
	started := time.Now()

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file, lint.Fingerprint(rules), opts.MaxDiagnostics)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Warn("cache read failed", "file", file.Path, "err", err)
		case hit:
			log.Debug("cache hit", "file", file.Path)
			emit(opts.Sink, Event{File: file.Path, Stage: StageCache, Status: StatusDone, Elapsed: time.Since(started)})
			return FileResult{FileID: fileID, Bag: payloadToBag(&payload, fileID, opts.MaxDiagnostics), Cached: true}, nil
		}
	}

	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	// восстановление парсера может повторить одну и ту же ошибку
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	emit(opts.Sink, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	stop := timer.Begin("parse")
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return FileResult{}, err
	}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseSource(file, builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	stop(fmt.Sprintf("%d syntax errors", parsed.Errors))

	emit(opts.Sink, Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	stop = timer.Begin("lint")
	err = lint.Run(ctx, builder, parsed.File, file, lint.Options{
		Rules:    rules,
		Reporter: reporter,
		Noqa:     lint.CollectNoqa(file),
	})
	stop("")
	if ctxErr := ctx.Err(); ctxErr != nil {
		return FileResult{}, ctxErr
	}
	if err != nil {
		// сбой правила не роняет прогон: он становится диагностикой
		for _, e := range unjoin(err) {
			reporter.Report(diag.LintRuleInternal, diag.SevError, source.Span{File: fileID}, e.Error(), nil, nil)
		}
		log.Error("rule failed", "file", file.Path, "err", err)
	}
	bag.Sort()

	if opts.Cache != nil && err == nil {
		if putErr := opts.Cache.Put(key, bagToPayload(file.Path, bag, fileSet)); putErr != nil {
			log.Warn("cache write failed", "file", file.Path, "err", putErr)
		}
	}

	res := FileResult{FileID: fileID, Bag: bag}
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
	}
	emit(opts.Sink, Event{File: file.Path, Stage: StageLint, Status: StatusDone, Elapsed: time.Since(started)})
	return res, nil
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// baseDir picks the directory relative paths are rendered against: the
// single directory target, or the working directory otherwise.
func baseDir(targets []string) string {
	if len(targets) == 1 {
		if info, err := os.Stat(targets[0]); err == nil {
			dir := targets[0]
			if !info.IsDir() {
				dir = filepath.Dir(dir)
			}
			if abs, err := filepath.Abs(dir); err == nil {
				return abs
			}
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}
