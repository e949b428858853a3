// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Command githistory-walk is a thin demonstration of pkg/githistory: it
// derives a starting set of tracked paths, streams a repository's commit
// history through a CommitParser, and prints the resulting HistoryTree.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/githistorian/internal/errors"
	"github.com/kraklabs/githistorian/internal/output"
	"github.com/kraklabs/githistorian/internal/ui"
	"github.com/kraklabs/githistorian/pkg/githistory"
)

// fileConfig is the optional YAML config loaded via --config, giving
// exclude globs a home outside the shell when there are many of them.
type fileConfig struct {
	Exclude []string `yaml:"exclude"`
}

// commitSummary is what visit() attaches to each HistoryNode: a commit's
// identity and its message's first line, not the full ParsedCommit.
type commitSummary struct {
	Commit  string `json:"commit"`
	Subject string `json:"subject"`
}

func main() {
	repoPath := flag.String("repo", ".", "Path to the git repository")
	excludeFlag := flag.StringArray("exclude", nil, "Glob pattern to exclude from the starting path set (repeatable)")
	configPath := flag.String("config", "", "YAML file with an 'exclude' list of glob patterns")
	minSimilarity := flag.Uint8("min-similarity", 0, "Drop rename/copy data below this similarity percent (0 disables filtering)")
	jsonOutput := flag.Bool("json", false, "Print the resulting tree as JSON instead of a colored summary")
	noColor := flag.Bool("no-color", false, "Disable colored output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: githistory-walk [options]

Walks a git repository's history, following renames and copies, and prints
the resulting history tree for its tracked files.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  githistory-walk --repo ~/src/myproject
  githistory-walk --exclude 'vendor/**' --exclude '*.generated.go' --json
`)
	}
	flag.Parse()

	ui.InitColors(*noColor)

	excludeGlobs := append([]string{}, *excludeFlag...)
	if *configPath != "" {
		globs, err := loadExcludeGlobs(*configPath)
		if err != nil {
			errors.FatalError(err, *jsonOutput)
		}
		excludeGlobs = append(excludeGlobs, globs...)
	}

	if err := checkIsRepo(*repoPath); err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	paths, err := githistory.PathSetFromLSFiles(*repoPath, excludeGlobs)
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Failed to list tracked files",
			err.Error(),
			"Check that --repo points at a readable git working tree",
			err,
		), *jsonOutput)
	}
	if len(paths) == 0 {
		errors.FatalError(errors.NewInputError(
			"No tracked files to walk",
			fmt.Sprintf("git ls-files returned no paths under %q after applying %d exclude pattern(s)", *repoPath, len(excludeGlobs)),
			"Check --repo and --exclude/--config",
		), *jsonOutput)
	}

	logger := slog.Default()
	parser := githistory.NewCommitParser(*repoPath, logger)
	builder := githistory.NewHistoryBuilder[commitSummary](logger)

	var keep func(githistory.ParsedCommit) bool
	if *minSimilarity > 0 {
		keep = githistory.KeepAboveSimilarity(*minSimilarity)
	}

	// cancel is only for cleaning up the git subprocess if something above
	// panics; ordinary termination comes from ParseHistory closing sink once
	// the log stream is exhausted, which unblocks builder.Gather's loop.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := make(chan githistory.ParsedCommit)
	parseErrCh := make(chan error, 1)
	go func() {
		parseErrCh <- parser.ParseHistory(ctx, sink)
	}()

	tree := builder.Gather(ctx, paths, summarize, keep, sink)

	if parseErr := <-parseErrCh; parseErr != nil {
		errors.FatalError(errors.NewParseError(
			"Cannot parse git history",
			parseErr.Error(),
			"Run `git log --name-status -M -C --pretty=format:%H%n%at` manually and check its output",
			parseErr,
		), *jsonOutput)
	}

	if *jsonOutput {
		if err := output.JSON(renderTree(tree)); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	printTree(tree)
}

// summarize is the visit function: it turns a ParsedCommit into the data
// each HistoryNode carries, a commit hash and the first line of its message.
func summarize(c githistory.ParsedCommit) commitSummary {
	return commitSummary{
		Commit:  c.ID.String(),
		Subject: commitSubject(c.ID),
	}
}

// commitSubject fetches a commit's subject line on demand, since
// `git log --name-status` doesn't carry the message body.
func commitSubject(id githistory.SHA1) string {
	out, err := exec.Command("git", "log", "--format=%s", "-1", id.String()).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// renderedNode is a JSON-friendly flattening of a HistoryNode[commitSummary]
// chain, since HistoryTree's pointer graph doesn't marshal meaningfully.
type renderedNode struct {
	Path     string          `json:"path"`
	Revision []commitSummary `json:"revisions"`
}

func renderTree(tree githistory.HistoryTree[commitSummary]) []renderedNode {
	rendered := make([]renderedNode, 0, len(tree))
	for path, node := range tree {
		r := renderedNode{Path: path}
		for n := node; n != nil; n = n.Previous {
			if n.Data != nil {
				r.Revision = append(r.Revision, *n.Data)
			}
		}
		rendered = append(rendered, r)
	}
	return rendered
}

func printTree(tree githistory.HistoryTree[commitSummary]) {
	ui.Header(fmt.Sprintf("History Tree (%d paths)", len(tree)))
	for path, node := range tree {
		fmt.Printf("%s\n", ui.Label(path))
		count := 0
		for n := node; n != nil; n = n.Previous {
			if n.Data == nil {
				continue
			}
			fmt.Printf("  %s %s\n", ui.DimText(n.Data.Commit[:12]), n.Data.Subject)
			count++
		}
		if count == 0 {
			fmt.Printf("  %s\n", ui.DimText("(filtered out)"))
		}
	}
}

// loadExcludeGlobs reads a YAML config file's "exclude" list.
func loadExcludeGlobs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(
			"Cannot read config file",
			err.Error(),
			fmt.Sprintf("Check that %q exists and is readable", path),
		)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewInputError(
			"Cannot parse config file",
			err.Error(),
			"Config must be YAML with a top-level 'exclude' list of glob patterns",
		)
	}
	return cfg.Exclude, nil
}

// checkIsRepo gives a clear NotFound error before shelling out to git log,
// instead of letting a confusing subprocess failure surface later.
func checkIsRepo(repoPath string) error {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = repoPath
	if err := cmd.Run(); err != nil {
		return errors.NewNotFoundError(
			"Repository not found",
			fmt.Sprintf("%q is not inside a git working tree", repoPath),
			"Pass --repo pointing at a git checkout",
		)
	}
	return nil
}
