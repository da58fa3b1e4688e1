package driver

import (
	"errors"

	"ledge/internal/ast"
	"ledge/internal/diag"
	"ledge/internal/parser"
	"ledge/internal/source"
)

// ParseResult bundles a parsed file with its session registers and
// diagnostics. Decls is nil when the parse failed.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Decls   []ast.Decl
	Session *parser.Session
	Bag     *diag.Bag
}

// Parse loads and parses one source file. Parse failures land in the
// bag rather than in the returned error, which covers I/O only.
func Parse(path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := opts.bag()
	sess := parser.NewSession(opts.Session)
	decls := observePhase(opts.Observer, "parse", func() []ast.Decl {
		out, parseErr := parser.ParseProgram(sess, file)
		if parseErr != nil {
			reportParseError(bag, parseErr)
			return nil
		}
		return out
	})
	sess.FlushWarnings(diag.NewDedupReporter(diag.BagReporter{Bag: bag}))

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Decls:   decls,
		Session: sess,
		Bag:     bag,
	}, nil
}

func reportParseError(bag *diag.Bag, err error) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		bag.Add(pe.Diagnostic())
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpected,
		Message:  err.Error(),
	})
}
