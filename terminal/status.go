// This file is part of Sidstreamer.
//
// Sidstreamer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sidstreamer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sidstreamer.  If not, see <https://www.gnu.org/licenses/>.

package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the information shown on the status line.
type Status struct {
	Title  string
	Author string
	Song   int
	Songs  int
	State  string

	// in the range 0 to 1
	Volume float32
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3))
	songStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4))
	stateStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2))
	volumeStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(5))
)

// the width of the volume bar in characters
const volumeBar = 10

// StatusLine renders the status on a single line.
func StatusLine(st Status) string {
	bar := int(max(min(st.Volume, 1.0), 0.0)*volumeBar + 0.5)

	return strings.Join([]string{
		titleStyle.Render(st.Title),
		authorStyle.Render(st.Author),
		songStyle.Render(fmt.Sprintf(" %d/%d ", st.Song, st.Songs)),
		stateStyle.Render(st.State),
		volumeStyle.Render(fmt.Sprintf("[%s%s]", strings.Repeat("#", bar), strings.Repeat(".", volumeBar-bar))),
	}, " ")
}
