package rsp

import "github.com/retrocore/rsp/pkg/inst"

// Step fetches, decodes, and executes exactly one instruction at PC,
// advancing PC (including resolving any pending branch delay slot) before
// returning. It returns the number of instructions executed (always 1 on
// success) and a non-nil *Fault only when the SU is halted — a decoded
// instruction itself never faults, since Decode guarantees every 32-bit
// word maps to something executable.
func (s *State) Step() (int, error) {
	if s.Control.Halted() {
		return 0, newFault(s.PC, "halt", "step called while SU halted")
	}

	pc := s.PC
	word := s.ReadIMEMWord(pc)
	in := inst.Decode(word)

	takeBranch := s.Branching
	target := s.BranchPC
	s.Branching = false

	if inst.IsVU(in.Op) {
		s.execVU(in)
	} else {
		s.execSU(in, pc)
	}

	if takeBranch {
		s.PC = target & (MemSize - 1)
	} else {
		s.PC = (pc + 4) & (MemSize - 1)
	}

	return 1, nil
}

// Run executes Step in a loop until the SU halts (via BREAK or an external
// HALT write) or maxSteps is reached, whichever comes first — a guard
// against runaway loops in a fixture or test that never sets BREAK.
func (s *State) Run(maxSteps int) (int, error) {
	n := 0
	for n < maxSteps {
		if s.Control.Halted() {
			return n, nil
		}
		if _, err := s.Step(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
