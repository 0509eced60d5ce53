package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/clipvault/clipvault/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	// If no subcommand provided, show recent history (same as 'clipvault list')
	if args.Watch == nil && args.List == nil && args.Search == nil && args.Image == nil &&
		args.Pin == nil && args.Unpin == nil && args.Tag == nil && args.Config == nil && args.Clear == nil {
		args.List = &cli.ListCmd{Limit: 20}
	}

	// Create CLI instance with args for database and config path support
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer cliHandler.Close()

	// Execute the command
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)

		// If it's an argument validation error, show usage
		if validationErr := args.Validate(); validationErr != nil {
			fmt.Println()
			parser.WriteUsage(os.Stderr)
		}
		os.Exit(1)
	}
}
