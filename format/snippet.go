package format

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ember/lang/token"
)

// Snippet renders a diagnostic with the offending source line, its
// neighbours and a caret under pos:
//
//	error in main.em at 2:7: Expected '='
//
//	   1 | # config
//	   2 | let x 1
//	     |       ^
func Snippet(src []byte, pos token.Position, msg string) string {
	lines := strings.Split(string(src), "\n")
	line, col := pos.Line, pos.Column
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if pos.File != "" {
		fmt.Fprintf(&b, "error in %s at %d:%d: %s\n\n", pos.File, line, col, msg)
	} else {
		fmt.Fprintf(&b, "error at %d:%d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) && lines[line] != "" {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
