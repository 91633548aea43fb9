// Package ui serves a small web playground: paste source, see its syntax
// tree, and browse the diagnostics of a workspace.
package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
	"github.com/dhamidi/ember/lang/token"
	"github.com/dhamidi/ember/workspace"
)

//go:embed templates
var embeddedFS embed.FS

// maxSource bounds the size of a parse request body.
const maxSource = 1 << 20

type Server struct {
	workspace *workspace.Workspace
	parseOpts []parser.Option
	templates *template.Template
	mux       *http.ServeMux
	log       commonlog.Logger
}

// NewServer serves ws, which may be nil to disable the file views. opts
// apply to every parse request.
func NewServer(ws *workspace.Workspace, opts ...parser.Option) (*Server, error) {
	funcMap := template.FuncMap{
		"formats": func() []string { return format.Names },
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		workspace: ws,
		parseOpts: opts,
		templates: tmpl,
		mux:       http.NewServeMux(),
		log:       commonlog.GetLogger("ember.ui"),
	}

	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /files", s.handleFiles)
	s.mux.HandleFunc("GET /files/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Source    string `json:"source"`
	Mode      string `json:"mode"`
	Format    string `json:"format"`
	Positions bool   `json:"positions"`
}

// ParseResponse carries either the encoded tree or the error.
type ParseResponse struct {
	Output string     `json:"output,omitempty"`
	Error  *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Snippet string `json:"snippet"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxSource)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Source = r.FormValue("source")
		req.Mode = r.FormValue("mode")
		req.Format = r.FormValue("format")
		req.Positions = r.FormValue("positions") != ""
	}

	resp, err := s.parse(req)
	if err != nil {
		if wantsJSON(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	s.render(w, "result.html", resp)
}

// parse fails only for bad requests. Syntax errors are part of the
// response.
func (s *Server) parse(req ParseRequest) (*ParseResponse, error) {
	mode, err := parser.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc, err := format.NewEncoder(req.Format, &out, format.Options{Positions: req.Positions})
	if err != nil {
		return nil, err
	}

	src := []byte(req.Source)
	opts := append(append([]parser.Option{}, s.parseOpts...), parser.WithMode(mode))
	node, err := parser.ParseSource(bytes.NewReader(src), opts...)
	if err != nil {
		return &ParseResponse{Error: errorInfo(src, err)}, nil
	}
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return &ParseResponse{Output: out.String()}, nil
}

func errorInfo(src []byte, err error) *ErrorInfo {
	var pos token.Position
	msg := err.Error()

	var syntaxErr *parser.Error
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &syntaxErr):
		pos, msg = syntaxErr.Start, syntaxErr.Message
	case errors.As(err, &lexErr):
		pos, msg = lexErr.Pos, lexErr.Message
	default:
		return &ErrorInfo{Message: msg}
	}
	return &ErrorInfo{
		Line:    pos.Line,
		Column:  pos.Column,
		Message: msg,
		Snippet: format.Snippet(src, pos, msg),
	}
}

// FileEntry is one row of the file list.
type FileEntry struct {
	Path       string                `json:"path"`
	Diagnostic *workspace.Diagnostic `json:"diagnostic,omitempty"`
}

func (s *Server) files() []FileEntry {
	var entries []FileEntry
	for _, path := range s.workspace.Paths() {
		entry := FileEntry{Path: path}
		if doc := s.workspace.GetFile(path); doc != nil && doc.Err != nil {
			d := doc.Diagnostic()
			entry.Diagnostic = &d
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if s.workspace == nil {
		http.NotFound(w, r)
		return
	}
	if err := s.workspace.ScanAll(); err != nil {
		http.Error(w, "scan: "+err.Error(), http.StatusInternalServerError)
		return
	}

	entries := s.files()
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, entries)
		return
	}
	s.render(w, "files.html", entries)
}

type fileView struct {
	Path   string
	Source string
	Tree   string
	Error  *ErrorInfo
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if s.workspace == nil {
		http.NotFound(w, r)
		return
	}
	path := r.PathValue("path")
	doc := s.workspace.GetFile(path)
	if doc == nil {
		doc = s.workspace.GetFile("/" + path)
	}
	if doc == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	view := fileView{Path: doc.Path, Source: string(doc.Content)}
	if doc.Err != nil {
		view.Error = errorInfo(doc.Content, doc.Err)
	} else {
		view.Tree = format.Source(doc.AST)
	}
	s.render(w, "file.html", view)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", map[string]any{
		"Files": s.workspace != nil,
	})
}
