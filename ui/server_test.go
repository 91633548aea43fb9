package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/ember/workspace"
)

func newTestServer(t *testing.T, ws *workspace.Workspace) *Server {
	t.Helper()
	s, err := NewServer(ws)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestParseJSON(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		body   string
		status int
		output string
		errMsg string
	}{
		{`{"source": "1 + 2 * 3"}`, http.StatusOK, "{(+ 1 (* 2 3))}\n", ""},
		{`{"source": "let x=1", "format": "source"}`, http.StatusOK, "let x = 1\n", ""},
		{`{"source": "{a = 1}", "mode": "object"}`, http.StatusOK, "(object a=1)\n", ""},
		{`{"source": "let x 1"}`, http.StatusOK, "", "Expected '='"},
		{`{"source": "1", "format": "xml"}`, http.StatusBadRequest, "", ""},
		{`{"source": "1", "mode": "lines"}`, http.StatusBadRequest, "", ""},
		{`not json`, http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/parse", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("got status %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp ParseResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Output != tt.output {
				t.Errorf("got output %q, want %q", resp.Output, tt.output)
			}
			if tt.errMsg == "" {
				if resp.Error != nil {
					t.Errorf("got error %+v", resp.Error)
				}
				return
			}
			if resp.Error == nil || resp.Error.Message != tt.errMsg {
				t.Fatalf("got error %+v, want %q", resp.Error, tt.errMsg)
			}
			if resp.Error.Line != 1 || resp.Error.Column != 7 || !strings.Contains(resp.Error.Snippet, "^") {
				t.Errorf("got %+v, want snippet at 1:7", resp.Error)
			}
		})
	}
}

func TestParseForm(t *testing.T) {
	s := newTestServer(t, nil)

	form := url.Values{"source": {"a < b"}, "format": {"tree"}}
	req := httptest.NewRequest("POST", "/parse", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	if body := rec.Body.String(); !strings.Contains(body, "{(&lt; a b)}") {
		t.Errorf("got %s, want escaped tree", body)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<option value="yaml">`) {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/files", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404 without workspace", rec.Code)
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	for name, content := range map[string]string{"ok.em": "let x = 1", "bad.em": "fun f("} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := newTestServer(t, workspace.New(root))

	req := httptest.NewRequest("GET", "/files", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var entries []FileEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if filepath.Base(entries[0].Path) != "bad.em" || entries[0].Diagnostic == nil {
		t.Errorf("got %+v, want diagnostic for bad.em", entries[0])
	}
	if entries[1].Diagnostic != nil {
		t.Errorf("got %+v, want no diagnostic for ok.em", entries[1])
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/files"+filepath.ToSlash(entries[1].Path), nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "let x = 1") {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/files/missing.em", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}
