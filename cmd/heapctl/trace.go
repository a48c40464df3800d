package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/relyt871/heapkit/heap"
	"github.com/spf13/cobra"
)

var (
	traceFile  string
	traceArena int
)

func init() {
	cmd := newTraceCmd()
	cmd.Flags().StringVar(&traceFile, "file", "", "trace file to replay ('-' reads stdin)")
	cmd.Flags().IntVar(&traceArena, "arena", 1<<20, "address space reserved for the heap, in bytes")
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Replay a textual allocation trace and validate after each line",
		Long: `trace reads a file of "a <id> <size>" and "f <id>" lines, one per line,
and replays them against a fresh heap: 'a' allocates size bytes and
remembers the result under id, 'f' frees whatever id currently holds. The
heap is validated after every line; the first violation aborts the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace()
		},
	}
}

func runTrace() error {
	if traceFile == "" {
		return fmt.Errorf("trace: --file is required")
	}

	r := os.Stdin
	if traceFile != "-" {
		f, err := os.Open(traceFile)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		defer f.Close()
		r = f
	}

	ap := heap.NewSliceProvider(traceArena)
	h, err := heap.New(ap, heap.DefaultConfig)
	if err != nil {
		return fmt.Errorf("trace: failed to initialize heap: %w", err)
	}

	live := make(map[string][]byte)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := replayLine(h, live, fields); err != nil {
			return fmt.Errorf("trace: line %d %q: %w", lineNo, line, err)
		}
		if v := h.Validate(); len(v) > 0 {
			return fmt.Errorf("trace: line %d %q: heap invariant violated: %s", lineNo, line, v[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("trace: %w", err)
	}

	stats := h.Stats()
	printInfo("replayed %d line(s): allocs=%d frees=%d splits=%d grows=%d\n",
		lineNo, stats.AllocCalls, stats.FreeCalls, stats.SplitCount, stats.GrowCalls)
	return nil
}

func replayLine(h *heap.Heap, live map[string][]byte, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "a":
		if len(fields) != 3 {
			return fmt.Errorf("expected 'a <id> <size>'")
		}
		id := fields[1]
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad size %q: %w", fields[2], err)
		}
		p, err := h.Allocate(size)
		if err != nil {
			return err
		}
		live[id] = p
		printVerbose("alloc(%d) id=%s -> %d bytes usable\n", size, id, len(p))
		return nil
	case "f":
		if len(fields) != 2 {
			return fmt.Errorf("expected 'f <id>'")
		}
		id := fields[1]
		p, ok := live[id]
		if !ok {
			return fmt.Errorf("free of unknown id %q", id)
		}
		delete(live, id)
		printVerbose("free id=%s (%d bytes)\n", id, len(p))
		return h.Deallocate(p)
	default:
		return fmt.Errorf("unrecognized opcode %q", fields[0])
	}
}
