package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/notegrid/packages/notegrid"
)

func runCommand(t *testing.T, a *app, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(a)
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func notesFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "notes.csv")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestSetAndExport(t *testing.T) {
	path := notesFile(t)
	small := []string{"--file", path, "--rows", "2", "--cols", "2"}

	out, _, err := runCommand(t, newApp(), "", append([]string{"set", "A1", "5"}, small...)...)
	require.NoError(t, err)
	assert.Equal(t, "A1 = 5\n", out)
	assert.Equal(t, "5,\n,\n", readFile(t, path))

	out, _, err = runCommand(t, newApp(), "", append([]string{"set", "B1", "=A1*2"}, small...)...)
	require.NoError(t, err)
	assert.Equal(t, "B1 = 10\n", out)
	assert.Equal(t, "5,=A1*2\n,\n", readFile(t, path))

	out, _, err = runCommand(t, newApp(), "", append([]string{"export"}, small...)...)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n5,=A1*2\n,\n", out)

	out, _, err = runCommand(t, newApp(), "", append([]string{"export", "--mode", "submission"}, small...)...)
	require.NoError(t, err)
	assert.Equal(t, "5,10\n,\n", out)

	out, _, err = runCommand(t, newApp(), "", append([]string{"export", "--range", "B1:B2"}, small...)...)
	require.NoError(t, err)
	assert.Equal(t, "B\n=A1*2\n\n", out)

	out, _, err = runCommand(t, newApp(), "", append(append([]string{"set"}, small...), "C3", "--", "-5")...)
	require.NoError(t, err)
	assert.Equal(t, "C3 = -5\n", out)
	assert.Equal(t, "5,=A1*2,\n,,\n,,-5\n", readFile(t, path))
}

func TestShow(t *testing.T) {
	path := notesFile(t)
	require.NoError(t, os.WriteFile(path, []byte("qty,price,total\n2,1.5,=A2*B2\n,,=Z99\n"), 0o644))

	out, _, err := runCommand(t, newApp(), "", "show", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	for _, want := range []string{"A", "B", "C", "qty", "price", "total", "1.5", "3", "#REF!"} {
		assert.Contains(t, out, want)
	}

	out, _, err = runCommand(t, newApp(), "", "show", "--formulas", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "=A2*B2")
	assert.Contains(t, out, "=Z99")
}

func TestShowMissingFile(t *testing.T) {
	_, _, err := runCommand(t, newApp(), "", "show", "--file", notesFile(t))

	var appErr *notegrid.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, notegrid.NotFound, appErr.Code)
}

func TestPaste(t *testing.T) {
	path := notesFile(t)
	require.NoError(t, os.WriteFile(path, []byte("5,=A1*2\n,\n"), 0o644))

	out, _, err := runCommand(t, newApp(), "1\t2\n3\t4\n", "paste", "--at", "B2", "--file", path, "--rows", "2", "--cols", "2")
	require.NoError(t, err)
	assert.Equal(t, "pasted 2 rows at B2\n", out)
	assert.Equal(t, "5,=A1*2,\n,1,2\n,3,4\n", readFile(t, path))
}

func TestPasteClipboard(t *testing.T) {
	path := notesFile(t)
	a := newApp()
	a.readClipboard = func() (string, error) {
		return "\"x, y\",=A2+1\n2,", nil
	}

	_, _, err := runCommand(t, a, "", "paste", "--clipboard", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Equal(t, "\"x, y\",=A2+1\n2,\n", readFile(t, path))

	out, _, err := runCommand(t, newApp(), "", "export", "--mode", "submission", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Equal(t, "\"x, y\",3\n2,\n", out)

	a.readClipboard = func() (string, error) {
		return "", errors.New("no clipboard utility")
	}
	_, _, err = runCommand(t, a, "", "paste", "--clipboard", "--file", path)
	assert.ErrorContains(t, err, "reading clipboard")
}

func TestPasteDelimiterFlag(t *testing.T) {
	path := notesFile(t)

	_, _, err := runCommand(t, newApp(), "a,b\tc", "paste", "--delimiter", "comma", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Equal(t, "a,\"b\tc\"\n", readFile(t, path))

	_, _, err = runCommand(t, newApp(), "a", "paste", "--delimiter", "pipe", "--file", path)
	var appErr *notegrid.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, notegrid.InvalidArgument, appErr.Code)
}

func TestEval(t *testing.T) {
	path := notesFile(t)
	require.NoError(t, os.WriteFile(path, []byte("5,3\n"), 0o644))

	out, _, err := runCommand(t, newApp(), "", "eval", "A1*B1*(1+10%)", "--file", path, "--rows", "1", "--cols", "2")
	require.NoError(t, err)
	assert.Equal(t, "16.5\n", out)

	out, _, err = runCommand(t, newApp(), "", "eval", "=Z99", "--file", path, "--rows", "1", "--cols", "2")
	require.NoError(t, err)
	assert.Equal(t, "#REF!\n", out)

	// eval never writes the file
	assert.Equal(t, "5,3\n", readFile(t, path))
}

func TestLogging(t *testing.T) {
	path := notesFile(t)

	_, errOut, err := runCommand(t, newApp(), "", "set", "A1", "=A1+1", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "circular references set to #ERROR")
	assert.NotContains(t, errOut, "level=DEBUG")

	_, errOut, err = runCommand(t, newApp(), "", "set", "A1", "1", "--verbose", "--file", path, "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "msg=stabilized")
}

func TestFileFromEnvironment(t *testing.T) {
	path := notesFile(t)
	t.Setenv(fileEnv, path)

	_, _, err := runCommand(t, newApp(), "", "set", "A1", "qty", "--rows", "1", "--cols", "1")
	require.NoError(t, err)
	assert.Equal(t, "qty\n", readFile(t, path))
}

func TestRunExitCodes(t *testing.T) {
	path := notesFile(t)
	var out, errOut bytes.Buffer

	code := run([]string{"set", "A1", "7", "--file", path}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)

	errOut.Reset()
	code = run([]string{"set", "A0", "7", "--file", path}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "notegrid: setting A0")

	errOut.Reset()
	code = run([]string{"show", "--file", filepath.Join(t.TempDir(), "missing.csv")}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "does not exist")

	errOut.Reset()
	code = run([]string{"show", "--rows", "-1", "--file", path}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)

	code = run([]string{"set", "A1"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)
}
