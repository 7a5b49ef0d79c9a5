package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapbox/heap"
)

type backendInfo struct {
	Name     string `json:"name"`
	Checked  bool   `json:"checked"`
	OffHeap  bool   `json:"off_heap"`
	Pointers bool   `json:"pointers"`
}

var backendTable = map[string]backendInfo{
	heap.BackendGo:     {Name: heap.BackendGo, Checked: true, OffHeap: false, Pointers: true},
	heap.BackendPages:  {Name: heap.BackendPages, Checked: true, OffHeap: true, Pointers: false},
	heap.BackendMalloc: {Name: heap.BackendMalloc, Checked: false, OffHeap: true, Pointers: false},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List allocator backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackends()
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends() error {
	infos := make([]backendInfo, 0, len(backendTable))
	for _, name := range heap.Backends() {
		infos = append(infos, backendTable[name])
	}
	if jsonOut {
		return printJSON(infos)
	}
	for _, b := range infos {
		printInfo("%-8s checked=%-5t off-heap=%-5t go-pointers=%t\n", b.Name, b.Checked, b.OffHeap, b.Pointers)
	}
	return nil
}
