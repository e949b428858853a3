// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package githistory

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// PathSetFromLSFiles builds a PathSet from `git ls-files` run against
// repoPath — the tracked-file listing at the current index/HEAD, which is
// the starting point GatherHistory needs to know which paths to follow.
// Paths matching any of excludeGlobs are left out.
func PathSetFromLSFiles(repoPath string, excludeGlobs []string) (PathSet, error) {
	cmd := exec.Command("git", "ls-files")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("githistory: git ls-files failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("githistory: git ls-files: %w", err)
	}

	paths := make(PathSet)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		path := scanner.Text()
		if path == "" {
			continue
		}
		if matchesAnyGlob(path, excludeGlobs) {
			continue
		}
		paths[path] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("githistory: reading git ls-files output: %w", err)
	}
	return paths, nil
}

// globCache memoizes pattern -> compiled regexp, since PathSetFromLSFiles
// evaluates the same small set of exclude patterns against every tracked
// path.
var globCache sync.Map // string -> *regexp.Regexp

// matchesGlob performs glob matching with support for:
//   - * : matches any sequence of non-separator characters
//   - ** : matches any sequence of characters including separators (any depth)
//   - ? : matches any single non-separator character
//   - [abc], [a-z], [!abc]/[^abc] : character classes
//
// Patterns are matched against the full path; a pattern that doesn't start
// with ** can still match a path suffix (an implicit **/ prefix is assumed),
// matching what a .gitignore-style exclude list expects. Each distinct
// pattern compiles to a regexp once and is cached for reuse.
func matchesGlob(path, pattern string) bool {
	return compileGlob(pattern).MatchString(path)
}

func matchesAnyGlob(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesGlob(path, pattern) {
			return true
		}
	}
	return false
}

func compileGlob(pattern string) *regexp.Regexp {
	if cached, ok := globCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}
	// An implicit "any leading path segments" prefix gives a bare pattern
	// like "*.go" or "README.md" suffix-matching behavior without special
	// casing it separately from an explicit "**/" prefix.
	src := "^(?:.*/)?" + globToRegexpBody(filepath.ToSlash(pattern)) + "$"
	re := regexp.MustCompile(src)
	globCache.Store(pattern, re)
	return re
}

// globToRegexpBody translates one glob pattern into the body of an anchored
// regexp, character by character.
func globToRegexpBody(pattern string) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		switch c := pattern[i]; {
		case c == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			if i+2 < len(pattern) && pattern[i+2] == '/' {
				b.WriteString("(?:.*/)?")
				i += 3
			} else {
				b.WriteString(".*")
				i += 2
			}
		case c == '*':
			b.WriteString("[^/]*")
			i++
		case c == '?':
			b.WriteString("[^/]")
			i++
		case c == '[':
			class, next, ok := scanCharClass(pattern, i)
			if !ok {
				b.WriteString(regexp.QuoteMeta("["))
				i++
				continue
			}
			b.WriteString(charClassToRegexp(class))
			i = next
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String()
}

// scanCharClass extracts the contents of a bracket expression starting at
// pattern[start] == '[', returning its body (without brackets) and the index
// just past the closing ']'. ok is false if pattern[start:] isn't a
// well-formed bracket expression, in which case the '[' should be treated as
// a literal.
func scanCharClass(pattern string, start int) (class string, next int, ok bool) {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) && pattern[i] != ']' {
		i++
	}
	if i >= len(pattern) {
		return "", start, false
	}
	return pattern[start+1 : i], i + 1, true
}

// charClassToRegexp renders a glob bracket expression's body ("abc", "a-z",
// "!abc", "^a-z") as an equivalent regexp character class.
func charClassToRegexp(class string) string {
	if class == "" {
		return "[^\\s\\S]" // matches nothing
	}
	negate := class[0] == '!' || class[0] == '^'
	body := class
	if negate {
		body = class[1:]
	}
	body = strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(body)
	if negate {
		return "[^" + body + "]"
	}
	return "[" + body + "]"
}

// KeepAboveSimilarity returns a keep predicate for GatherHistory that
// rejects any commit containing a Renamed or Copied delta below threshold
// percent similarity, treating it as an opaque break in the chain's data
// (the nodes still anchor/link; only their Data is dropped). The predicate
// judges the whole commit, so every node that commit produces loses its
// Data, including nodes for its Added, Deleted, or Modified deltas. Commits
// with no Renamed or Copied delta are always kept, since PercentChanged is
// only meaningful for renames and copies.
//
// Pass nil to GatherHistory for the default: every commit is kept, and
// rename-only pseudo-changes are never elided, matching spec.md's default
// of retaining them so callers can filter explicitly.
func KeepAboveSimilarity(threshold uint8) func(ParsedCommit) bool {
	return func(c ParsedCommit) bool {
		for _, d := range c.Deltas {
			if d.Change.Kind != Renamed && d.Change.Kind != Copied {
				continue
			}
			if d.Change.PercentChanged < threshold {
				return false
			}
		}
		return true
	}
}
