package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"sandpile/internal/sims/sandpile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPNGCommandWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "png", "-n", "100", "-l", "5", "-o", dir)
	require.NoError(t, err)
	require.Contains(t, out, "10 sweeps")

	_, err = os.Stat(filepath.Join(dir, "render", "img_100_grains_5x5px_probability_1.png"))
	require.NoError(t, err)
}

func TestPNGCommandCascadeModeName(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "png", "-n", "40", "-l", "5", "--mode", "torus", "-o", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "render", "img_40_grains_5x5px_torus.png"))
	require.NoError(t, err)
}

func TestInvalidProbabilityProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "-n", "100", "-l", "5", "-p", "1.5", "-o", dir)
	require.ErrorIs(t, err, sandpile.ErrInvalidProbability)
	require.Contains(t, out, "between 0.0 and 1.0")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGIFCommandReportsProgress(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "gif", "-n", "60", "-l", "7", "--frames", "3", "--workers", "1", "-o", dir)
	require.NoError(t, err)
	require.Contains(t, out, "3 of 3")

	_, err = os.Stat(filepath.Join(dir, "gif", "img_60_grains_7x7px_3_frames.gif"))
	require.NoError(t, err)
}

func TestSweepRejectsCascadeMode(t *testing.T) {
	_, err := execute(t, "chart", "--mode", "recursive", "-o", t.TempDir())
	require.ErrorContains(t, err, "iterative")
}

func TestDefaultCommandSkipsSweepForCascadeModes(t *testing.T) {
	for _, mode := range []string{"recursive", "torus"} {
		dir := t.TempDir()
		out, err := execute(t, "-n", "40", "-l", "5", "--mode", mode, "-o", dir)
		require.NoError(t, err)
		require.Contains(t, out, "Skipping probability sweep")

		_, err = os.Stat(filepath.Join(dir, "render", "img_40_grains_5x5px_"+mode+".png"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "gif"))
		require.True(t, os.IsNotExist(err), "no gif directory expected in %s mode", mode)
	}
}

func TestTorusCommandReportsEndlessCascade(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "png", "-n", "24", "-l", "3", "--mode", "torus", "-o", dir)
	require.ErrorIs(t, err, sandpile.ErrNeverStable)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPrintCommand(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	out, err := execute(t, "print", "-n", "3", "-l", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, strings.Repeat("██", 5), lines[0])
}

func TestUnknownModeRejected(t *testing.T) {
	_, err := execute(t, "png", "--mode", "spiral", "-o", t.TempDir())
	require.ErrorIs(t, err, sandpile.ErrUnknownMode)
}
