package convert

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	cases := []struct {
		line, prefix, smiles string
	}{
		{"CCO", "", "CCO"},
		{"myid\tCCO", "myid\t", "CCO"},
		{"a\tb\tCCO", "a\tb\t", "CCO"},
		{"id\t", "id\t", ""},
		{"\tCCO", "\t", "CCO"},
		{"CCO ethanol", "", "CCO ethanol"},
		{"", "", ""},
	}
	for _, tc := range cases {
		prefix, smiles := SplitLine(tc.line)
		assert.Equal(t, tc.prefix, prefix, "prefix of %q", tc.line)
		assert.Equal(t, tc.smiles, smiles, "smiles of %q", tc.line)
		assert.Equal(t, tc.line, prefix+smiles)
	}
}

type lineResult struct {
	line    string
	tooLong bool
}

func readAll(t *testing.T, input string, max int) []lineResult {
	t.Helper()
	lr := newLineReader(strings.NewReader(input), max)
	var out []lineResult
	for {
		line, tooLong, err := lr.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, lineResult{line, tooLong})
	}
}

func TestLineReader(t *testing.T) {
	cases := []struct {
		name  string
		input string
		max   int
		want  []lineResult
	}{
		{"empty input", "", 0, nil},
		{"lf", "a\nb\n", 0, []lineResult{{"a", false}, {"b", false}}},
		{"crlf", "a\r\nb\r\n", 0, []lineResult{{"a", false}, {"b", false}}},
		{"lone cr", "a\rb\r\nc\r", 0, []lineResult{{"a", false}, {"b", false}, {"c", false}}},
		{"cr before crlf", "a\r\r\n", 0, []lineResult{{"a", false}, {"", false}}},
		{"unterminated final line", "a\nb", 0, []lineResult{{"a", false}, {"b", false}}},
		{"blank lines", "\n\na\n", 0, []lineResult{{"", false}, {"", false}, {"a", false}}},
		{"tabs kept", "x\ty\n", 0, []lineResult{{"x\ty", false}}},
		{"limit reached exactly", "abcd\r\n", 4, []lineResult{{"abcd", false}}},
		{"limit exceeded", "abcde\nab\n", 4, []lineResult{{"", true}, {"ab", false}}},
		{"limit exceeded on final line", "ab\nabcdefgh", 4, []lineResult{{"ab", false}, {"", true}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readAll(t, tc.input, tc.max))
		})
	}
}

func TestLineReader_LongLinesSpanBuffers(t *testing.T) {
	long := strings.Repeat("C", 200*1024)
	got := readAll(t, long+"\nCCO\n", 0)
	require.Len(t, got, 2)
	assert.Equal(t, long, got[0].line)
	assert.Equal(t, "CCO", got[1].line)

	got = readAll(t, long+"\nCCO\n", 1024)
	assert.Equal(t, []lineResult{{"", true}, {"CCO", false}}, got)
}

//Personal.AI order the ending
