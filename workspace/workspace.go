// Package workspace keeps the parsed state of every source file below a
// root directory.
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
	"github.com/dhamidi/ember/lang/token"
)

type Workspace struct {
	mu         sync.RWMutex
	rootDir    string
	extensions []string
	exclude    []string
	parseOpts  []parser.Option
	fixedMode  bool
	log        commonlog.Logger
	files      map[string]*Document
}

// Document is the result of lexing and parsing one file. Err holds the
// lexical or syntax error, AST is nil whenever Err is set.
type Document struct {
	Path    string
	Content []byte
	Tokens  []token.Token
	AST     ast.Node
	Err     error
}

// Diagnostic is a document error located in its source.
type Diagnostic struct {
	Path    string
	Start   token.Position
	End     token.Position
	Message string
}

type Option func(*Workspace)

// WithExtensions limits scanning to files with one of exts.
func WithExtensions(exts ...string) Option {
	return func(w *Workspace) {
		w.extensions = exts
	}
}

// WithExclude skips files and directories whose base name matches one of
// the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(w *Workspace) {
		w.exclude = patterns
	}
}

// WithParserOptions is passed to every parse.
func WithParserOptions(opts ...parser.Option) Option {
	return func(w *Workspace) {
		w.parseOpts = opts
	}
}

// WithFixedMode parses every file in the mode set by the parser options,
// ignoring the *.object.em naming rule.
func WithFixedMode() Option {
	return func(w *Workspace) {
		w.fixedMode = true
	}
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir:    rootDir,
		extensions: []string{".em"},
		log:        commonlog.GetLogger("ember.workspace"),
		files:      make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Matches reports whether path is a source file of the workspace.
func (w *Workspace) Matches(path string) bool {
	return slices.Contains(w.extensions, filepath.Ext(path)) && !w.excluded(filepath.Base(path))
}

// HasObjectSuffix reports names like settings.object.em, which hold a
// single object.
func HasObjectSuffix(path string) bool {
	base := filepath.Base(path)
	return filepath.Ext(strings.TrimSuffix(base, filepath.Ext(base))) == ".object"
}

func (w *Workspace) excluded(name string) bool {
	for _, pattern := range w.exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// walk calls fn for every source file below the root. Hidden and excluded
// directories are skipped.
func (w *Workspace) walk(fn func(path string, info fs.FileInfo)) error {
	return w.walkTree(nil, fn)
}

// dirs lists the root and every directory walk descends into.
func (w *Workspace) dirs() ([]string, error) {
	var dirs []string
	err := w.walkTree(func(dir string) { dirs = append(dirs, dir) }, nil)
	return dirs, err
}

func (w *Workspace) walkTree(onDir func(dir string), onFile func(path string, info fs.FileInfo)) error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == w.rootDir {
				return err
			}
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && w.skipDir(info.Name()) {
				return filepath.SkipDir
			}
			if onDir != nil {
				onDir(path)
			}
			return nil
		}
		if onFile != nil && w.Matches(path) {
			onFile(path, info)
		}
		return nil
	})
}

func (w *Workspace) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || w.excluded(name)
}

// ScanAll parses every source file below the root.
func (w *Workspace) ScanAll() error {
	count := 0
	err := w.walk(func(path string, info fs.FileInfo) {
		if err := w.ScanFile(path); err != nil {
			w.log.Warningf("scan %s: %s", path, err)
			return
		}
		count++
	})
	w.log.Infof("scanned %d files below %s", count, w.rootDir)
	return err
}

// ScanFile reads path from disk and parses it.
func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new state of path and returns the
// resulting document.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	doc := w.parse(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = doc
	return doc
}

func (w *Workspace) parse(path string, content []byte) *Document {
	doc := &Document{Path: path, Content: content}

	tokens, err := lexer.Tokenize(content, path)
	if err != nil {
		doc.Err = err
		w.log.Debugf("%s", err)
		return doc
	}
	doc.Tokens = tokens

	opts := append([]parser.Option{parser.WithFile(path)}, w.parseOpts...)
	if !w.fixedMode && HasObjectSuffix(path) {
		opts = append(opts, parser.WithMode(parser.ModeObject))
	}
	doc.AST, doc.Err = parser.ParseTokens(tokens, opts...)
	if doc.Err != nil {
		w.log.Debugf("%s", doc.Err)
	}
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the known document paths in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns one diagnostic per document that failed to lex or
// parse, ordered by path.
func (w *Workspace) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, path := range w.Paths() {
		if doc := w.GetFile(path); doc != nil && doc.Err != nil {
			diags = append(diags, doc.Diagnostic())
		}
	}
	return diags
}

// Diagnostic converts the document error. It returns the zero value when
// the document parsed.
func (d *Document) Diagnostic() Diagnostic {
	if d.Err == nil {
		return Diagnostic{}
	}
	diag := Diagnostic{Path: d.Path, Message: d.Err.Error()}

	var syntaxErr *parser.Error
	var lexErr *lexer.Error
	switch {
	case errors.As(d.Err, &syntaxErr):
		diag.Start, diag.End, diag.Message = syntaxErr.Start, syntaxErr.End, syntaxErr.Message
	case errors.As(d.Err, &lexErr):
		diag.Start, diag.Message = lexErr.Pos, lexErr.Message
		diag.End = lexErr.Pos
		diag.End.Column++
		diag.End.Offset++
	}
	return diag
}

// Symbol is a top-level definition of a document.
type Symbol struct {
	Name string
	Kind ast.Kind
	Span token.Span
	// Selection is the span of the defining name.
	Selection token.Span
}

// Symbols lists the top-level `let` assignments and named functions of
// path, in source order.
func (w *Workspace) Symbols(path string) []Symbol {
	doc := w.GetFile(path)
	if doc == nil || doc.AST == nil {
		return nil
	}
	return SymbolsOf(doc.AST)
}

// SymbolsOf lists the definitions at the top of root. For an object file
// these are its fields.
func SymbolsOf(root ast.Node) []Symbol {
	var symbols []Symbol
	switch root := root.(type) {
	case *ast.Statements:
		for _, n := range root.Body {
			switch n := n.(type) {
			case *ast.VarAssign:
				symbols = append(symbols, Symbol{n.Name.Value, n.Kind(), n.Span(), n.Name.Span})
			case *ast.FuncDef:
				if n.Name != nil {
					symbols = append(symbols, Symbol{n.Name.Value, n.Kind(), n.Span(), n.Name.Span})
				}
			}
		}
	case *ast.Object:
		for _, f := range root.Fields {
			symbols = append(symbols, Symbol{f.Name.Value, f.Value.Kind(), f.Name.Span.Join(f.Value.Span()), f.Name.Span})
		}
	}
	return symbols
}
