// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package githistory

import "fmt"

// ChangeKind identifies what kind of modification a FileDelta describes.
type ChangeKind int

const (
	// Added means the path did not exist in the parent and now does.
	Added ChangeKind = iota
	// Deleted means the path existed in the parent and no longer does.
	Deleted
	// Modified means the path's contents changed but its name did not.
	Modified
	// Renamed means the path is a new name for a file that existed under
	// FileDelta.From in the parent. PercentChanged records how much of the
	// content git considers unchanged across the rename.
	Renamed
	// Copied means the path is a new file whose initial content was copied
	// from FileDelta.From, which continues to exist independently.
	Copied
)

// String renders a ChangeKind as its full name ("Added", "Renamed", ...).
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	case Renamed:
		return "Renamed"
	case Copied:
		return "Copied"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes one file-level modification reported by a commit.
//
// PercentChanged is only meaningful when Kind is Renamed or Copied; it holds
// the percentage of content git considers to have carried over (0-100). It is
// zero and unused for Added, Deleted, and Modified.
type Change struct {
	Kind           ChangeKind
	PercentChanged uint8
}

// FileDelta pairs a Change with the path(s) it touches.
//
// Path is always the name the change is reported under: the new name for a
// Renamed/Copied delta, the touched name for Added/Deleted/Modified. From is
// only set for Renamed and Copied, naming the source path.
type FileDelta struct {
	Change Change
	Path   string
	From   string
}

// PathSet is the set of paths a HistoryBuilder follows through history.
// Membership, not iteration order, is what matters; it is a map for O(1)
// lookups in the builder's gate check.
type PathSet map[string]struct{}

// NewPathSet builds a PathSet from the given paths.
func NewPathSet(paths ...string) PathSet {
	set := make(PathSet, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether path is a member of the set.
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Timestamp is a commit's authored-or-committed time as git reports it:
// seconds since the Unix epoch. git log --pretty=format:%at only ever
// reports whole seconds, so there is no sub-second component to carry.
type Timestamp int64

// ParsedCommit is one commit as the parser hands it to the builder: an
// identity, a time, and the ordered list of file changes it reports relative
// to its parent(s).
//
// Deltas preserves the order git reported them in; the builder never sorts
// or reorders them (see GatherHistory's doc comment on same-commit renames).
type ParsedCommit struct {
	ID     SHA1
	When   Timestamp
	Deltas []FileDelta
}
