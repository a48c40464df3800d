// Command heapctl drives a heap instance from the command line: it can
// run a synthetic allocation trace, report placement/growth statistics,
// and validate heap structure.
package main

func main() {
	execute()
}
