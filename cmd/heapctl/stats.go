package main

import (
	"fmt"

	"github.com/relyt871/heapkit/heap"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	statsOps     int
	statsMaxSize int
	statsArena   int
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsOps, "ops", 10000, "number of trace operations to run")
	cmd.Flags().IntVar(&statsMaxSize, "max-size", 4096, "largest single allocation, in bytes")
	cmd.Flags().IntVar(&statsArena, "arena", 64<<20, "address space reserved for the heap, in bytes")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run a synthetic allocation trace and report placement statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	ap := heap.NewSliceProvider(statsArena)
	h, err := heap.New(ap, heap.DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	printVerbose("running %d operations over a %d byte arena\n", statsOps, statsArena)
	live := runWorkload(h, statsOps, statsMaxSize, 1)
	for _, p := range live {
		_ = h.Deallocate(p)
	}

	stats := h.Stats()
	if jsonOut {
		return printJSON(stats)
	}

	p := message.NewPrinter(language.English)
	printInfo("Allocation Statistics\n")
	printInfo("======================\n\n")
	printInfo("Calls:\n")
	printInfo("%s", p.Sprintf("  Allocate:       %d (%d fast path, %d after growth)\n",
		stats.AllocCalls, stats.AllocFastPath, stats.AllocSlowPath))
	printInfo("%s", p.Sprintf("  Free:           %d\n", stats.FreeCalls))
	printInfo("%s", p.Sprintf("  Bytes alloc'd:  %d\n", stats.BytesAllocated))
	printInfo("%s", p.Sprintf("  Bytes freed:    %d\n\n", stats.BytesFreed))

	printInfo("Splitting and coalescing:\n")
	printInfo("%s", p.Sprintf("  Splits:               %d\n", stats.SplitCount))
	printInfo("%s", p.Sprintf("  Coalesce (none):      %d\n", stats.CoalesceNone))
	printInfo("%s", p.Sprintf("  Coalesce (forward):   %d\n", stats.CoalesceForward))
	printInfo("%s", p.Sprintf("  Coalesce (backward):  %d\n", stats.CoalesceBackward))
	printInfo("%s", p.Sprintf("  Coalesce (both):      %d\n\n", stats.CoalesceBoth))

	printInfo("Growth:\n")
	printInfo("%s", p.Sprintf("  Extend calls: %d\n", stats.GrowCalls))
	printInfo("%s", p.Sprintf("  Bytes grown:  %d\n", stats.GrowBytes))

	violations := h.Validate()
	if len(violations) > 0 {
		printError("heap failed validation after trace: %d violation(s)\n", len(violations))
		for _, v := range violations {
			printInfo("  %s\n", v)
		}
	}
	return nil
}
