package rsp

import "fmt"

// Fault reports a condition Step cannot continue past. Decode and Exec never
// produce one on their own — every encoding maps to something executable —
// so today the only source is calling Step while the SU is already halted.
// It carries PC for the caller to locate where execution stopped.
type Fault struct {
	PC      uint32
	Op      string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("rsp: fault at pc=0x%03x (%s): %s", f.PC, f.Op, f.Message)
}

func newFault(pc uint32, op, msg string) *Fault {
	return &Fault{PC: pc, Op: op, Message: msg}
}
