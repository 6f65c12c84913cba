package report

// TextSpan represents a range or "span" of source text.  It is used to mark
// the source text corresponding to AST nodes and diagnostics.  Spans are
// inclusive on both sides: the starting position is the position of the first
// character in the span and the ending position is the position of the last
// character in the span.  Line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}
