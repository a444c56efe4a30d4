package convert

import (
	"bufio"
	"io"
	"strings"
)

// SplitLine separates an input line into its prefix and SMILES.  The prefix
// runs up to and including the last tab; without a tab the whole line is the
// SMILES and the prefix is empty.
func SplitLine(line string) (prefix, smiles string) {
	tab := strings.LastIndexByte(line, '\t')
	if tab < 0 {
		return "", line
	}
	return line[:tab+1], line[tab+1:]
}

// lineReader yields lines terminated by "\n", "\r\n" or a lone "\r"; a final
// line without terminator is still a line.  Lines longer than max bytes
// (when max > 0) are consumed and reported as too long instead of being
// returned.
type lineReader struct {
	r   *bufio.Reader
	max int
	buf []byte
}

func newLineReader(r io.Reader, max int) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024), max: max}
}

// Next returns the next line without its terminator.  tooLong is set when
// the line exceeded the limit; line is empty in that case.  err is io.EOF
// once the input is exhausted.
func (lr *lineReader) Next() (line string, tooLong bool, err error) {
	lr.buf = lr.buf[:0]
	read := false
	for {
		b, rerr := lr.r.ReadByte()
		if rerr != nil {
			if rerr == io.EOF && read {
				return lr.finish(tooLong)
			}
			return "", false, rerr
		}
		read = true

		switch b {
		case '\n':
			return lr.finish(tooLong)
		case '\r':
			if next, perr := lr.r.Peek(1); perr == nil && next[0] == '\n' {
				_, _ = lr.r.ReadByte()
			}
			return lr.finish(tooLong)
		}

		if tooLong {
			continue
		}
		if lr.max > 0 && len(lr.buf) >= lr.max {
			tooLong = true
			lr.buf = lr.buf[:0]
			continue
		}
		lr.buf = append(lr.buf, b)
	}
}

func (lr *lineReader) finish(tooLong bool) (string, bool, error) {
	if tooLong {
		return "", true, nil
	}
	return string(lr.buf), false, nil
}

//Personal.AI order the ending
