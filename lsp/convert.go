package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
	"github.com/dhamidi/ember/workspace"
)

var diagnosticSource = lsName

// toPosition converts a 1-based token position to a 0-based protocol
// position. Characters count the UTF-16 code units of the line in src, or
// bytes when src does not cover pos.
func toPosition(src []byte, pos token.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	if lineStart := pos.Offset - col; col > 0 && lineStart >= 0 && pos.Offset <= len(src) {
		col = utf16Len(src[lineStart:pos.Offset])
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		n += utf16.RuneLen(r)
		b = b[size:]
	}
	return n
}

func toRange(src []byte, start, end token.Position) protocol.Range {
	if !end.IsValid() || end.Offset < start.Offset {
		end = start
	}
	return protocol.Range{Start: toPosition(src, start), End: toPosition(src, end)}
}

func toDiagnostic(src []byte, d workspace.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range:    toRange(src, d.Start, d.End),
		Severity: &severity,
		Source:   &diagnosticSource,
		Message:  d.Message,
	}
}

func toSymbolKind(kind ast.Kind) protocol.SymbolKind {
	switch kind {
	case ast.KindFuncDef:
		return protocol.SymbolKindFunction
	case ast.KindVarAssign:
		return protocol.SymbolKindVariable
	case ast.KindObject:
		return protocol.SymbolKindObject
	case ast.KindList:
		return protocol.SymbolKindArray
	case ast.KindString:
		return protocol.SymbolKindString
	case ast.KindNumber:
		return protocol.SymbolKindNumber
	default:
		return protocol.SymbolKindField
	}
}

func toDocumentSymbols(src []byte, symbols []workspace.Symbol) []protocol.DocumentSymbol {
	result := []protocol.DocumentSymbol{}
	for _, s := range symbols {
		detail := s.Kind.String()
		result = append(result, protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           toSymbolKind(s.Kind),
			Range:          toRange(src, s.Span.Start, s.Span.End),
			SelectionRange: toRange(src, s.Selection.Start, s.Selection.End),
		})
	}
	return result
}
