// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package githistory follows a set of paths through a git repository's
// history, the way `git log --follow` does for one path at a time, but for
// many paths at once and with rename/copy chains fully materialized as a
// graph instead of flattened into a single linear log.
//
// # Pipeline Overview
//
// Two components do the work, connected by a channel:
//
//  1. Parsing: CommitParser shells out to `git log --name-status -M -C
//     --pretty=format:%H%n%at` and turns its output into a stream of
//     ParsedCommits, newest first.
//  2. Gathering: GatherHistory consumes that stream and builds a
//     HistoryTree, following Renamed/Copied deltas back through older
//     commits so a path's full ancestry survives name changes.
//
// # Quick Start
//
//	paths, err := githistory.PathSetFromLSFiles(repoPath, []string{"vendor/**"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sink := make(chan githistory.ParsedCommit)
//	parser := githistory.NewCommitParser(repoPath, logger)
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	go func() {
//	    if err := parser.ParseHistory(ctx, sink); err != nil {
//	        log.Println("parse error:", err)
//	    }
//	}()
//
//	visit := func(c githistory.ParsedCommit) string { return c.ID.String() }
//	tree := githistory.GatherHistory(ctx, paths, visit, nil, sink)
//
//	for path, node := range tree {
//	    fmt.Println(path, "->", *node.Data)
//	}
//
// # Key Components
//
// CommitParser drives the subprocess and line state machine:
//
//	parser := githistory.NewCommitParser(repoPath, logger)
//	err := parser.ParseHistory(ctx, sink)
//
// GatherHistory (or HistoryBuilder.Gather, its logging wrapper) builds the
// HistoryTree:
//
//	tree := githistory.GatherHistory(ctx, paths, visit, keep, sink)
//
// visit turns a commit into caller data (a diff stat, a commit message, a
// parsed AST — whatever the caller's HistoryNode[T] should carry). keep, if
// non-nil, lets a commit's data be dropped from the tree while still
// preserving the chain's shape; KeepAboveSimilarity builds one based on
// rename/copy similarity percentage.
//
// PathSetFromLSFiles derives a starting PathSet from a repository's tracked
// files, optionally filtered by exclude globs:
//
//	paths, err := githistory.PathSetFromLSFiles(repoPath, excludeGlobs)
//
// # Concurrency
//
// ParseHistory and GatherHistory are meant to run concurrently, connected by
// a channel sized to the caller's needs (unbuffered for maximum
// backpressure, or buffered to let the parser run ahead). Canceling the
// shared context stops both sides; there is no separate timeout mechanism.
//
// # Metrics
//
// Prometheus metrics are exported for both stages: per-change-kind counters
// from the parser (githistorian_parse_delta_*_total), and node/link/anchor
// counters plus a duration histogram from the builder
// (githistorian_gather_*).
package githistory
