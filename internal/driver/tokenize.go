package driver

import (
	"fmt"

	"ledge/internal/diag"
	"ledge/internal/parser"
	"ledge/internal/source"
	"ledge/internal/token"
)

// defaultMaxDiagnostics bounds bags when the caller passes no limit.
const defaultMaxDiagnostics = 64

// Options configures the single-file drivers.
type Options struct {
	MaxDiagnostics int
	Session        parser.SessionOptions
	Observer       PhaseObserver
}

func (o Options) bag() *diag.Bag {
	maxDiag := o.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	return diag.NewBag(maxDiag)
}

// TokenizeResult bundles a tokenized file with its diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads one source file and produces its token stream. Lexical
// problems surface as Invalid tokens and as diagnostics in the bag; the
// returned error covers I/O failures only.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := opts.bag()
	sess := parser.NewSession(opts.Session)
	tokens := observePhase(opts.Observer, "tokenize", func() []token.Token {
		return parser.Tokenize(sess, file)
	})
	reportInvalidTokens(bag, tokens)
	sess.FlushWarnings(diag.NewDedupReporter(diag.BagReporter{Bag: bag}))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

func reportInvalidTokens(bag *diag.Bag, tokens []token.Token) {
	for _, tok := range tokens {
		if tok.Kind != token.Invalid {
			continue
		}
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Message:  fmt.Sprintf("invalid token %q", tok.Text),
			Primary:  tok.Span,
		})
	}
}
