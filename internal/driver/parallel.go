package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ledge/internal/ast"
	"ledge/internal/diag"
	"ledge/internal/parser"
	"ledge/internal/source"
	"ledge/internal/token"
)

// DirOptions configures the directory drivers.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int // worker cap, GOMAXPROCS when <= 0
	Session        parser.SessionOptions
	Cache          *DiskCache   // ParseDir only; nil disables caching
	Events         chan<- Event // optional per-file progress sink
	Observer       PhaseObserver
}

func (o DirOptions) bag() *diag.Bag {
	maxDiag := o.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	return diag.NewBag(maxDiag)
}

func (o DirOptions) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, files)
}

// TokenizeDirResult is the tokenization outcome for one file.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult is the parse outcome for one file. Decls and Session
// are nil when the result was served from the disk cache.
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Decls   []ast.Decl
	Session *parser.Session
	Bag     *diag.Bag
	Cached  bool
}

// ListSourceFiles returns every *.lg file under dir, sorted for a
// deterministic processing order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lg") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// loadAll preloads every file into the FileSet serially; the FileSet is
// not safe for concurrent mutation. Files that fail to load are recorded
// so workers can turn the failure into a diagnostic.
func loadAll(fileSet *source.FileSet, files []string) (map[string]source.FileID, map[string]error) {
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	return fileIDs, loadErrors
}

func loadFailure(bag *diag.Bag, err error) {
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
	})
}

// TokenizeDir tokenizes every *.lg file under dir in parallel. The
// result slice is index-aligned with the sorted file list.
func TokenizeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs, loadErrors := loadAll(fileSet, files)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{File: path, Stage: StageTokenize, Status: StatusWorking})

			bag := opts.bag()
			if loadErr, failed := loadErrors[path]; failed {
				loadFailure(bag, loadErr)
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				emit(opts.Events, Event{File: path, Stage: StageTokenize, Status: StatusError})
				return nil
			}

			fileID := fileIDs[path]
			sess := parser.NewSession(opts.Session)
			tokens := parser.Tokenize(sess, fileSet.Get(fileID))
			reportInvalidTokens(bag, tokens)
			sess.FlushWarnings(diag.NewDedupReporter(diag.BagReporter{Bag: bag}))

			// Workers own disjoint indices, no mutex needed.
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
			}
			emit(opts.Events, Event{File: path, Stage: StageTokenize, Status: doneStatus(bag)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir parses every *.lg file under dir in parallel. When a disk
// cache is attached, files whose content digest already has a stored
// payload are answered from the cache without reparsing.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs, loadErrors := loadAll(fileSet, files)
	results := make([]ParseDirResult, len(files))

	run := func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.jobs(len(files)))
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				emit(opts.Events, Event{File: path, Stage: StageParse, Status: StatusWorking})

				bag := opts.bag()
				if loadErr, failed := loadErrors[path]; failed {
					loadFailure(bag, loadErr)
					results[i] = ParseDirResult{Path: path, Bag: bag}
					emit(opts.Events, Event{File: path, Stage: StageParse, Status: StatusError})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				var payload DiskPayload
				if hit, _ := opts.Cache.Get(file.Hash, &payload); hit {
					restoreDiagnostics(bag, payload.Diagnostics)
					results[i] = ParseDirResult{
						Path:   path,
						FileID: fileID,
						Bag:    bag,
						Cached: true,
					}
					emit(opts.Events, Event{File: path, Stage: StageParse, Status: doneStatus(bag)})
					return nil
				}

				sess := parser.NewSession(opts.Session)
				decls, parseErr := parser.ParseProgram(sess, file)
				if parseErr != nil {
					reportParseError(bag, parseErr)
				}
				sess.FlushWarnings(diag.NewDedupReporter(diag.BagReporter{Bag: bag}))

				if opts.Cache != nil {
					// Best effort: a failed Put only costs a reparse later.
					_ = opts.Cache.Put(file.Hash, &DiskPayload{
						Schema:      diskCacheSchemaVersion,
						Path:        path,
						DeclCount:   len(decls),
						Diagnostics: cacheDiagnostics(bag),
					})
				}

				results[i] = ParseDirResult{
					Path:    path,
					FileID:  fileID,
					Decls:   decls,
					Session: sess,
					Bag:     bag,
				}
				emit(opts.Events, Event{File: path, Stage: StageParse, Status: doneStatus(bag)})
				return nil
			})
		}
		return g.Wait()
	}

	if err := observePhase(opts.Observer, "parse", run); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func doneStatus(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}
