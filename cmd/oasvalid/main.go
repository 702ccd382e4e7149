package main

import (
	"context"
	"fmt"
	"os"

	"github.com/calquist/oasvalid"
	"github.com/calquist/oasvalid/cmd/oasvalid/commands"
	"github.com/calquist/oasvalid/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasvalid v%s\n", oasvalid.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists every command name accepted by the dispatcher.
var knownCommands = []string{"generate", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or the empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasvalid - OpenAPI validation layer generator

Usage:
  oasvalid <command> [options]

Commands:
  generate    Generate validation schemas, client, and server code from a specification
  mcp         Run an MCP server exposing oasvalid tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasvalid generate -o ./petstore openapi.yaml
  oasvalid generate --generate-client --generate-server -o ./petstore openapi.yaml
  oasvalid generate --package petstore -o ./petstore https://example.com/api/openapi.yaml
  oasvalid generate --dump-normalized openapi.yaml

Run 'oasvalid <command> --help' for more information on a command.`)
}
