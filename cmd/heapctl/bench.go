package main

import (
	"fmt"
	"time"

	"github.com/relyt871/heapkit/heap"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	benchOps   int
	benchArena int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 200000, "number of trace operations to time")
	cmd.Flags().IntVar(&benchArena, "arena", 256<<20, "address space reserved for the heap, in bytes")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Time a synthetic allocation trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

func runBench() error {
	ap := heap.NewSliceProvider(benchArena)
	h, err := heap.New(ap, heap.DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	start := time.Now()
	runWorkload(h, benchOps, 4096, 3)
	elapsed := time.Since(start)

	p := message.NewPrinter(language.English)
	rate := float64(benchOps) / elapsed.Seconds()
	printInfo("%s", p.Sprintf("%d operations in %s (%.0f ops/sec)\n", benchOps, elapsed, rate))
	return nil
}
