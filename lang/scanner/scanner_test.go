package scanner_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/tallforasmurf/plox/internal/filetest"
	"github.com/tallforasmurf/plox/internal/maincmd"
	"github.com/tallforasmurf/plox/lang/scanner"
	"github.com/tallforasmurf/plox/lang/token"
)

var testUpdateScannerTests = flag.Bool("test.update-scanner-tests", false, "If set, replace expected scanner test results with actual results.")

func init() {
	color.NoColor = true
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.TokenizeFile(ctx, stdio, token.PosNone, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateScannerTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateScannerTests)
		})
	}
}

func TestScanChunkValues(t *testing.T) {
	ctx := context.Background()
	toks, err := scanner.ScanChunk(ctx, "test", []byte(`var x = 12.5; "ab"`))
	require.NoError(t, err)

	want := []token.Token{
		token.VAR, token.IDENT, token.EQ, token.NUMBER, token.SEMICOLON,
		token.STRING, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, tv := range toks {
		require.Equal(t, want[i], tv.Token)
	}

	require.Equal(t, "x", toks[1].Value.Raw)
	require.Equal(t, 12.5, toks[3].Value.Float)
	require.Equal(t, "12.5", toks[3].Value.Raw)
	require.Equal(t, "ab", toks[5].Value.String)
	require.Equal(t, `"ab"`, toks[5].Value.Raw)

	// the last token is always EOF
	require.Equal(t, token.EOF, toks[len(toks)-1].Token)
}

func TestScanPositions(t *testing.T) {
	ctx := context.Background()
	toks, err := scanner.ScanChunk(ctx, "test", []byte("var x;\n  x;"))
	require.NoError(t, err)

	wantPos := []struct{ line, col int }{
		{1, 1}, // var
		{1, 5}, // x
		{1, 6}, // ;
		{2, 3}, // x
		{2, 4}, // ;
		{2, 5}, // EOF
	}
	require.Len(t, toks, len(wantPos))
	for i, tv := range toks {
		l, c := tv.Value.Pos.LineCol()
		require.Equal(t, wantPos[i].line, l, "token %d line", i)
		require.Equal(t, wantPos[i].col, c, "token %d col", i)
	}
}
