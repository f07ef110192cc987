package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"runtime"

	"github.com/retrocore/rsp/pkg/golden"
	"github.com/retrocore/rsp/pkg/inst"
	"github.com/retrocore/rsp/pkg/rsp"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rspvec",
		Short: "RSP interpreter core — run golden-vector fixtures and disassemble IMEM dumps",
	}

	var workers int
	runCmd := &cobra.Command{
		Use:   "run <fixture.toml>...",
		Short: "Replay golden-vector fixture files and report pass/fail",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(args, workers)
		},
	}
	runCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel fixture workers")

	disasmCmd := &cobra.Command{
		Use:   "disasm <imem-dump>",
		Short: "Disassemble a raw IMEM binary dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disasmFile(args[0])
		},
	}

	rootCmd.AddCommand(runCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFixtures(paths []string, workers int) error {
	allPassed := true
	for _, path := range paths {
		suite, err := golden.LoadSuite(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		fmt.Printf("=== %s (%d fixtures) ===\n", path, len(suite.Fixtures))
		outcomes := golden.RunSuite(suite, workers)
		report := golden.NewReport(outcomes)
		fmt.Print(report.String())
		if !report.Passed() {
			allPassed = false
		}
	}
	if !allPassed {
		return fmt.Errorf("one or more fixtures failed")
	}
	return nil
}

func disasmFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > rsp.MemSize {
		return fmt.Errorf("%s is %d bytes, exceeds %d-byte IMEM", path, len(data), rsp.MemSize)
	}

	for addr := 0; addr+4 <= len(data); addr += 4 {
		word := binary.BigEndian.Uint32(data[addr:])
		in := inst.Decode(word)
		fmt.Printf("%04x: %08x  %s\n", addr, word, inst.Disassemble(in))
	}
	return nil
}
