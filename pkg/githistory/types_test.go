// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package githistory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeKind_String(t *testing.T) {
	tests := []struct {
		kind ChangeKind
		want string
	}{
		{Added, "Added"},
		{Deleted, "Deleted"},
		{Modified, "Modified"},
		{Renamed, "Renamed"},
		{Copied, "Copied"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestChangeKind_StringUnknown(t *testing.T) {
	assert.Equal(t, "ChangeKind(99)", ChangeKind(99).String())
}

func TestFileDelta_RenamedCarriesFromAndPercent(t *testing.T) {
	d := FileDelta{
		Change: Change{Kind: Renamed, PercentChanged: 73},
		From:   "old/path.go",
		Path:   "new/path.go",
	}
	assert.Equal(t, "old/path.go", d.From)
	assert.Equal(t, "new/path.go", d.Path)
	assert.Equal(t, uint8(73), d.Change.PercentChanged)
}

func TestNewPathSet(t *testing.T) {
	set := NewPathSet()
	assert.Empty(t, set)

	set = NewPathSet("a", "b", "a")
	assert.Len(t, set, 2)
	assert.True(t, set.Contains("a"))
}
