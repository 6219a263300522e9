// Package cmd implements the Vivid CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (list, validate, render).
package cmd

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "vivid",
	Short: "Vivid - host and render visual effect demos",
	Long: `Vivid hosts dynamically selected visual-effect modules: it resolves
an effect from a catalog, mounts it through the protocol the catalog
declares, and drives its lifecycle to the running state.

Use "vivid <command> --help" for more information about a command.`,
	Usage: "vivid <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("Vivid CLI version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  vivid list                      List the built-in effects")
	fmt.Println("  vivid validate catalog.yaml     Validate a catalog file")
	fmt.Println("  vivid render plasma             Render an effect to PNG")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
