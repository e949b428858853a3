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

// Package ui provides the colored terminal helpers githistory-walk's
// tree-printing path needs: a header rule, bold inline labels, and dimmed
// secondary text. It respects the --no-color flag and the NO_COLOR
// environment variable (both checked in InitColors).
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Bold renders path labels in a history tree listing; Dim renders the
// commit hash prefix next to each revision line.
var (
	Bold = color.New(color.Bold)
	Dim  = color.New(color.Faint)
)

// InitColors configures global color output based on the noColor flag and
// the NO_COLOR environment variable: color is off if either asks for it. It
// should be called early in main() after parsing flags.
func InitColors(noColor bool) {
	color.NoColor = noColor || os.Getenv("NO_COLOR") != ""
}

// Header prints a bold title with an underline separator sized to it.
//
// Example output:
//
//	History Tree (3 paths)
//	======================
func Header(text string) {
	_, _ = Bold.Println(text)
	fmt.Println(strings.Repeat("=", len(text)))
}

// Label returns a bold-formatted string for inline use, such as a tracked
// path heading a revision list.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for secondary details, such as a
// truncated commit hash.
func DimText(text string) string {
	return Dim.Sprint(text)
}
