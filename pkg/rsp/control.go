package rsp

// SP_STATUS bit positions, named per the documented RSP register map.
const (
	StatusHalt             uint32 = 1 << 0
	StatusBroke            uint32 = 1 << 1
	StatusDMABusy          uint32 = 1 << 2
	StatusDMAFull          uint32 = 1 << 3
	StatusIOFull           uint32 = 1 << 4
	StatusSingleStep       uint32 = 1 << 5
	StatusInterruptOnBreak uint32 = 1 << 6
	StatusSig0             uint32 = 1 << 7
	StatusSig1             uint32 = 1 << 8
	StatusSig2             uint32 = 1 << 9
	StatusSig3             uint32 = 1 << 10
	StatusSig4             uint32 = 1 << 11
	StatusSig5             uint32 = 1 << 12
	StatusSig6             uint32 = 1 << 13
	StatusSig7             uint32 = 1 << 14
)

// ControlRegs holds the SP control/DMA register file: SP_STATUS and the
// DMA address/length staging registers, plus the single-bit hardware
// semaphore. Named fields with bit-position documentation follow the
// CP0-register modeling style used for MIPS coprocessor register files.
type ControlRegs struct {
	Status uint32

	MemAddr  uint32 // SP_MEM_ADDR: IMEM/DMEM-relative address, bit 12 selects IMEM
	DRAMAddr uint32 // SP_DRAM_ADDR: RDRAM address

	Semaphore bool // SP_SEMAPHORE: read acquires (returns old+sets), write releases (clears)
}

// ReadStatus returns the current SP_STATUS value.
func (c *ControlRegs) ReadStatus() uint32 {
	return c.Status
}

// Halted reports whether the SU is halted, i.e. whether HALT is set. BREAK
// sets HALT together with BROKE (see SetBroke).
func (c *ControlRegs) Halted() bool {
	return c.Status&StatusHalt != 0
}

// SetBroke sets BROKE and, per spec.md §4.5, HALT — a BREAK always stops
// execution regardless of the interrupt-on-break setting.
func (c *ControlRegs) SetBroke() {
	c.Status |= StatusBroke | StatusHalt
}

// InterruptPending reports whether BROKE fired while INTR_ON_BREAK is set,
// i.e. whether an MI interrupt should be signaled.
func (c *ControlRegs) InterruptPending() bool {
	return c.Status&StatusBroke != 0 && c.Status&StatusInterruptOnBreak != 0
}

// WriteStatusSU applies the bit-per-field write semantics SP_STATUS has
// when written by the scalar unit's own MTC0 (distinct from the write-mask
// semantics the host CPU's SP_STATUS write uses, which this interpreter
// does not model since the RSP side never issues that write form).
func (c *ControlRegs) WriteStatusSU(v uint32) {
	c.Status = v
}

// AcquireSemaphore implements SP_SEMAPHORE's read side: returns the
// previous value and unconditionally sets the latch, so two back-to-back
// reads always see (false, true) then (true, true).
func (c *ControlRegs) AcquireSemaphore() bool {
	prev := c.Semaphore
	c.Semaphore = true
	return prev
}

// ReleaseSemaphore implements SP_SEMAPHORE's write side: any write clears
// the latch regardless of value, matching the documented hardware behavior.
func (c *ControlRegs) ReleaseSemaphore() {
	c.Semaphore = false
}
