package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/VantageDataChat/GoDeck/decks"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBuildDefaultDeck(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "[OK] Saved to "+decks.SuistodyOutput+"\n", stdout)

	info, err := os.Stat(decks.SuistodyOutput)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestBuildToOutPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	stdout, stderr, err := execute(t, "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "[OK] Saved to "+path+"\n", stdout)
	assert.Contains(t, stderr, "assembled deck")

	stdout, _, err = execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "slides: 14")
	assert.Contains(t, stdout, "slide 1 (Title): 6 shapes")
	assert.Contains(t, stdout, "SUISTODY")
	assert.Contains(t, stdout, "size: 13.333in x 7.500in")
}

func TestBuildUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "deck.pptx")
	stdout, stderr, err := execute(t, "-o", path)
	require.Error(t, err)
	var owe *layout.OutputWriteError
	assert.ErrorAs(t, err, &owe)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "build failed")
	assert.NoFileExists(t, path)
}

func TestBuildFromDeckFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "launch.pptx")
	previews := filepath.Join(dir, "previews")
	deckPath := filepath.Join("..", "..", "deckfile", "testdata", "launch.yaml")

	stdout, _, err := execute(t, "-d", deckPath, "-o", out, "--preview", previews, "--preview-width", "320")
	require.NoError(t, err)
	assert.Equal(t, "[OK] Saved to "+out+"\n", stdout)
	assert.FileExists(t, out)
	assert.FileExists(t, filepath.Join(previews, "slide_01.png"))
	assert.FileExists(t, filepath.Join(previews, "slide_02.png"))
	assert.NoFileExists(t, filepath.Join(previews, "slide_03.png"))

	stdout, _, err = execute(t, "inspect", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Launch Review")
	assert.Contains(t, stdout, "slides: 2")
	assert.Contains(t, stdout, "2. Ship")
}

func TestBuildBadDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slides:\n  - primitives:\n      - kind: hexagon\n"), 0o644))
	stdout, stderr, err := execute(t, "-d", path, "-o", filepath.Join(t.TempDir(), "x.pptx"))
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "hexagon")
}

func TestInspectMissingFile(t *testing.T) {
	_, stderr, err := execute(t, "inspect", filepath.Join(t.TempDir(), "none.pptx"))
	require.Error(t, err)
	assert.Contains(t, stderr, "inspect failed")
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, _, err := execute(t, "extra")
	assert.Error(t, err)
}
