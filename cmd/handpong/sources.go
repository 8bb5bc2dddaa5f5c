package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hand-pong/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List hand input sources",
	Long:  `Shows every hand input source registered with the game.`,
	Args:  cobra.NoArgs,
	Run:   runSources,
}

func runSources(_ *cobra.Command, _ []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No hand sources available.")
		return
	}

	fmt.Println("Available hand sources:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range sources {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'handpong play --source <name>' to use one.")
}
