// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	"github.com/fatih/color"
)

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	tests := []struct {
		name     string
		noColor  bool
		expected bool
	}{
		{name: "colors enabled when noColor is false", noColor: false, expected: false},
		{name: "colors disabled when noColor is true", noColor: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitColors(tt.noColor)
			if color.NoColor != tt.expected {
				t.Errorf("InitColors(%v): color.NoColor = %v, expected %v",
					tt.noColor, color.NoColor, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	result := Label("path/to/file.go")
	expected := "path/to/file.go"
	if result != expected {
		t.Errorf("Label() = %q, expected %q", result, expected)
	}
}

func TestDimText(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	result := DimText("abcdef123456")
	expected := "abcdef123456"
	if result != expected {
		t.Errorf("DimText() = %q, expected %q", result, expected)
	}
}

func TestColorVariablesInitialized(t *testing.T) {
	if Bold == nil {
		t.Error("Bold color not initialized")
	}
	if Dim == nil {
		t.Error("Dim color not initialized")
	}
}

func TestHeader(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	// Header writes straight to stdout; verifying it doesn't panic on a
	// range of inputs is what's worth checking here.
	Header("History Tree (3 paths)")
	Header("")
}

func TestEdgeCases(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	t.Run("empty string label", func(t *testing.T) {
		result := Label("")
		if result != "" {
			t.Errorf("Label(\"\") = %q, expected empty string", result)
		}
	})

	t.Run("empty string dimText", func(t *testing.T) {
		result := DimText("")
		if result != "" {
			t.Errorf("DimText(\"\") = %q, expected empty string", result)
		}
	})

	t.Run("special characters in label", func(t *testing.T) {
		result := Label("path/to/weird file (copy).go")
		expected := "path/to/weird file (copy).go"
		if result != expected {
			t.Errorf("Label() with special chars = %q, expected %q", result, expected)
		}
	})
}
