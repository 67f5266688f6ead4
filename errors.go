package strictjson

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Syntax error codes (exported consts so callers can branch without parsing
// messages).
const (
	CodeUnexpectedEnd   = "unexpected_end"
	CodeUnexpectedToken = "unexpected_token"
	CodeExpectedChar    = "expected_char"
	CodeDuplicateKey    = "duplicate_key"
	CodeBadNumber       = "bad_number"
	CodeBadString       = "bad_string"
	CodeBadObject       = "bad_object"
	CodeBadArray        = "bad_array"
	CodeTooDeep         = "too_deep"
)

// SyntaxError is the only error kind produced by Parse.
type SyntaxError struct {
	Code    string // One of the codes listed above.
	Message string
	// Offset is the byte offset of the character under examination when the
	// failure was detected; len(Input) when the input ran out.
	Offset int
	Input  string
	// Params carries the offending token, expected character or key for
	// localized rendering ("token", "expected", "key", "max").
	Params map[string]string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Offset)
}

// Line returns the 1-based line of Offset.
func (e *SyntaxError) Line() int {
	return strings.Count(e.Input[:e.clamped()], "\n") + 1
}

// Column returns the 1-based column of Offset, counted in characters.
func (e *SyntaxError) Column() int {
	off := e.clamped()
	start := strings.LastIndexByte(e.Input[:off], '\n') + 1
	return utf8.RuneCountInString(e.Input[start:off]) + 1
}

// Snippet renders the line holding Offset followed by a caret line pointing
// at the offending character. Lines longer than width are cut around the
// caret; width <= 0 disables cutting.
func (e *SyntaxError) Snippet(width int) string {
	off := e.clamped()
	start := strings.LastIndexByte(e.Input[:off], '\n') + 1
	end := strings.IndexByte(e.Input[off:], '\n')
	if end < 0 {
		end = len(e.Input)
	} else {
		end += off
	}
	line := []rune(strings.TrimRight(e.Input[start:end], "\r"))
	col := utf8.RuneCountInString(e.Input[start:off])
	if width > 0 && len(line) > width {
		from := col - width/2
		if from < 0 {
			from = 0
		}
		if from+width > len(line) {
			from = len(line) - width
		}
		line = line[from : from+width]
		col -= from
	}
	return string(line) + "\n" + strings.Repeat(" ", col) + "^"
}

func (e *SyntaxError) clamped() int {
	switch {
	case e.Offset < 0:
		return 0
	case e.Offset > len(e.Input):
		return len(e.Input)
	}
	return e.Offset
}

// AsSyntaxError extracts a *SyntaxError from err using errors.As.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

const msgUnexpectedEnd = "Unexpected end of JSON input"

func (d *decoder) errorf(code string, params map[string]string, format string, args ...any) error {
	return &SyntaxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  d.pos,
		Input:   d.text,
		Params:  params,
	}
}

func (d *decoder) errEnd() error {
	return d.errorf(CodeUnexpectedEnd, nil, msgUnexpectedEnd)
}

func (d *decoder) errToken() error {
	tok := d.token()
	return d.errorf(CodeUnexpectedToken, map[string]string{"token": tok}, "Unexpected token %q in JSON input", tok)
}
