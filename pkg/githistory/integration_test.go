// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package githistory

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRenameRepo creates a throwaway repo with three commits: add a.txt,
// modify a.txt, rename a.txt to b.txt. It exercises the real `git log`
// subprocess end to end, rather than a hand-built ParsedCommit stream.
func setupRenameRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoErrorf(t, err, "git %v: %s", args, out)
	}

	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")

	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("a.txt", "one\n")
	run("add", "a.txt")
	run("commit", "-q", "-m", "add a.txt")

	write("a.txt", "one\ntwo\n")
	run("add", "a.txt")
	run("commit", "-q", "-m", "modify a.txt")

	run("mv", "a.txt", "b.txt")
	run("commit", "-q", "-m", "rename a.txt to b.txt")

	return dir
}

// TestParseHistory_ClosesSinkOnCompletion wires the real CommitParser into a
// plain drain loop: if ParseHistory ever stopped closing sink, this would
// hang until the test's own deadline killed it.
func TestParseHistory_ClosesSinkOnCompletion(t *testing.T) {
	repo := setupRenameRepo(t)

	parser := NewCommitParser(repo, nil)
	sink := make(chan ParsedCommit)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- parser.ParseHistory(ctx, sink) }()

	var commits []ParsedCommit
	for c := range sink {
		commits = append(commits, c)
	}

	require.NoError(t, <-errCh)
	assert.Len(t, commits, 3)
}

// TestGatherHistory_EndToEndWithRealParser wires CommitParser.ParseHistory
// straight into GatherHistory the way cmd/githistory-walk does, with no
// test-only channel feeding in between. Before ParseHistory closed sink on
// every exit path, this call would never return.
func TestGatherHistory_EndToEndWithRealParser(t *testing.T) {
	repo := setupRenameRepo(t)

	paths, err := PathSetFromLSFiles(repo, nil)
	require.NoError(t, err)
	require.True(t, paths.Contains("b.txt"))

	parser := NewCommitParser(repo, nil)
	sink := make(chan ParsedCommit)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- parser.ParseHistory(ctx, sink) }()

	tree := GatherHistory(ctx, paths, commitID, nil, sink)
	require.NoError(t, <-errCh)

	require.Contains(t, tree, "b.txt")
	count := 0
	for n := tree["b.txt"]; n != nil; n = n.Previous {
		count++
	}
	assert.Equal(t, 3, count)
}
