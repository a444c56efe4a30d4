package inchi

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/computefp/internal/domain/molecule"
	"github.com/turtacn/computefp/pkg/errors"
)

type fakeRunner struct {
	out   Output
	err   error
	block bool

	gotPath  string
	gotArgs  []string
	gotStdin string
	calls    int
}

func (f *fakeRunner) Run(ctx context.Context, path string, args []string, stdin []byte) (Output, error) {
	f.calls++
	f.gotPath, f.gotArgs, f.gotStdin = path, args, string(stdin)
	if f.block {
		<-ctx.Done()
		return Output{}, ctx.Err()
	}
	return f.out, f.err
}

const (
	ethanolInChI = "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3"
	ethanolKey   = "InChIKey=LFQSCWFLJHTTHZ-UHFFFAOYSA-N"
)

func TestGenerator_OK(t *testing.T) {
	r := &fakeRunner{out: Output{Stdout: []byte(ethanolInChI + "\n" + ethanolKey + "\n")}}
	g := NewGenerator("/usr/bin/inchi-1", Config{Args: []string{"-STDIO", "-Key"}}, r, nil)

	res, err := g.Generate(context.Background(), parse(t, "CCO"))
	require.NoError(t, err)

	assert.Equal(t, molecule.InChIOK, res.Status)
	assert.Equal(t, ethanolInChI, res.InChI)
	assert.Equal(t, "LFQSCWFLJHTTHZ-UHFFFAOYSA-N", res.Key)
	assert.Equal(t, "/usr/bin/inchi-1", r.gotPath)
	assert.Equal(t, []string{"-STDIO", "-Key"}, r.gotArgs)
	assert.Contains(t, r.gotStdin, "V2000")
}

func TestGenerator_WarningFromLog(t *testing.T) {
	r := &fakeRunner{out: Output{
		Stdout: []byte(ethanolInChI + "\n" + ethanolKey + "\n"),
		Stderr: []byte("Warning (Charges were rearranged) structure #1.\n"),
	}}
	g := NewGenerator("inchi-1", Config{}, r, nil)

	res, err := g.Generate(context.Background(), parse(t, "CCO"))
	require.NoError(t, err)

	assert.Equal(t, molecule.InChIWarning, res.Status)
	assert.Equal(t, "Warning (Charges were rearranged)", res.Message)
	assert.True(t, res.Usable())
}

func TestGenerator_ErrorWhenNoInChI(t *testing.T) {
	r := &fakeRunner{out: Output{
		Stderr:   []byte("Error 2 (no InChI; Unknown element(s): Xx) structure #1.\n"),
		ExitCode: 1,
	}}
	g := NewGenerator("inchi-1", Config{}, r, nil)

	res, err := g.Generate(context.Background(), parse(t, "CCO"))
	require.NoError(t, err)

	assert.Equal(t, molecule.InChIError, res.Status)
	assert.Equal(t, "Error 2 (no InChI; Unknown element(s): Xx)", res.Message)
	assert.False(t, res.Usable())
}

func TestGenerator_MolfileFailureIsErrorResult(t *testing.T) {
	r := &fakeRunner{}
	g := NewGenerator("inchi-1", Config{}, r, nil)

	res, err := g.Generate(context.Background(), parse(t, "[C]$[C]"))
	require.NoError(t, err)

	assert.Equal(t, molecule.InChIError, res.Status)
	assert.Zero(t, r.calls)
}

func TestGenerator_Timeout(t *testing.T) {
	r := &fakeRunner{block: true}
	g := NewGenerator("inchi-1", Config{Timeout: 10 * time.Millisecond}, r, nil)

	res, err := g.Generate(context.Background(), parse(t, "CCO"))
	require.NoError(t, err)

	assert.Equal(t, molecule.InChIError, res.Status)
	assert.Contains(t, res.Message, "timed out")
}

func TestGenerator_ParentCancelled(t *testing.T) {
	r := &fakeRunner{block: true}
	g := NewGenerator("inchi-1", Config{Timeout: time.Minute}, r, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, parse(t, "CCO"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_RunnerFailure(t *testing.T) {
	r := &fakeRunner{err: stderrors.New("exec format error")}
	g := NewGenerator("inchi-1", Config{}, r, nil)

	_, err := g.Generate(context.Background(), parse(t, "CCO"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeToolkitUnavailable))
}

func TestParseOutput(t *testing.T) {
	cases := []struct {
		name   string
		out    Output
		status molecule.InChIStatus
		msg    string
	}{
		{
			name:   "non-zero exit with InChI",
			out:    Output{Stdout: []byte(ethanolInChI + "\n"), ExitCode: 2},
			status: molecule.InChIError,
			msg:    "InChI program exited with status 2",
		},
		{
			name:   "empty output",
			out:    Output{},
			status: molecule.InChIError,
			msg:    "no InChI produced",
		},
		{
			name:   "two warnings",
			out:    Output{Stdout: []byte(ethanolInChI + "\n"), Stderr: []byte("Warning (A) structure #1.\nWarning (B) structure #1.\n")},
			status: molecule.InChIWarning,
			msg:    "Warning (A); Warning (B)",
		},
		{
			name:   "crlf output",
			out:    Output{Stdout: []byte(ethanolInChI + "\r\n" + ethanolKey + "\r\n")},
			status: molecule.InChIOK,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ParseOutput(tc.out)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.msg, res.Message)
		})
	}
}

//Personal.AI order the ending
