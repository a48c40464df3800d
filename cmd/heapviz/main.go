// Command heapviz is an interactive terminal visualizer for a running
// heap: it renders every block in address order, colored by allocation
// state, and lets you drive allocate/free operations to watch splitting
// and coalescing happen live.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if _, err := tea.NewProgram(newModel()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "heapviz:", err)
		os.Exit(1)
	}
}
