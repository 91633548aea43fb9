package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/ember/lang/token"
)

// LineEncoder writes one token per line as tab-separated fields:
// position, kind and value.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tokens []token.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(tokens []token.Token) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n",
			tok.Span.Start.Line,
			tok.Span.Start.Column,
			tok.Kind,
			tokenValue(tok),
		)
	}
	return []byte(sb.String()), nil
}

func tokenValue(tok token.Token) string {
	switch tok.Kind {
	case token.String:
		return strconv.Quote(tok.Value)
	case token.Newline:
		return ""
	}
	return tok.Value
}
