// Command polishc is a thin wrapper around package polish: it reads one
// expression (from its argument or from stdin) and prints the canonical
// prefix form, or the syntax error's caret-annotated message on failure.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	polish "github.com/aledsdavies/polishc"
)

func main() {
	var variable bool

	rootCmd := &cobra.Command{
		Use:   "polishc [expression]",
		Short: "Compile an infix expression to its canonical prefix form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, variable)
		},
	}
	rootCmd.Flags().BoolVar(&variable, "variable", false, "parse the input as a single variable name instead of an expression")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, variable bool) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	if variable {
		name, err := polish.ParseVariable(input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	}

	stream, err := polish.Parse(input)
	if err != nil {
		return err
	}
	text, err := stream.Canonical()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// readInput takes the expression from args[0] if given, otherwise reads
// all of stdin and trims its trailing newline.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
