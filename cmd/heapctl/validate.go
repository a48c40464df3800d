package main

import (
	"fmt"

	"github.com/relyt871/heapkit/heap"
	"github.com/spf13/cobra"
)

var (
	validateOps   int
	validateArena int
)

func init() {
	cmd := newValidateCmd()
	cmd.Flags().IntVar(&validateOps, "ops", 5000, "number of trace operations to run before validating")
	cmd.Flags().IntVar(&validateArena, "arena", 64<<20, "address space reserved for the heap, in bytes")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run a trace and check every structural invariant of the resulting heap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}
}

func runValidate() error {
	ap := heap.NewSliceProvider(validateArena)
	h, err := heap.New(ap, heap.DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	runWorkload(h, validateOps, 4096, 2)
	violations := h.Validate()

	if jsonOut {
		return printJSON(violations)
	}

	if len(violations) == 0 {
		printInfo("heap is structurally valid after %d operations\n", validateOps)
		return nil
	}

	printError("%d violation(s) found\n", len(violations))
	for _, v := range violations {
		printInfo("  %s\n", v)
	}
	return fmt.Errorf("validation failed")
}
