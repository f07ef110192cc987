package rsp

// Interrupter is implemented by whatever host embeds the RSP core (the RCP
// in a full emulator) to receive the MI interrupt a completed DMA, or a
// BREAK with INTR_ON_BREAK set, raises. An interpreter-only build that
// doesn't wire an interrupt controller can pass a no-op implementation.
type Interrupter interface {
	SignalInterrupt()
}

// noopInterrupter discards every signal; used when the caller doesn't wire
// one, so DMA/BREAK completion never needs a nil check.
type noopInterrupter struct{}

func (noopInterrupter) SignalInterrupt() {}

// DMATransfer describes one IMEM/DMEM<->RDRAM transfer in flight: the
// current row, the remaining row count, and the per-row strides on each
// side (the documented SP_RD_LEN/SP_WR_LEN count/width/skip triple).
type DMATransfer struct {
	SPAddr   uint32 // IMEM/DMEM-relative address, advances by Width+1 per row
	DRAMAddr uint32 // RDRAM address, advances by Width+1+Skip per row
	Width    uint32 // bytes per row, minus 1 (SP_RD_LEN/SP_WR_LEN field encoding)
	Skip     uint32 // extra RDRAM stride per row, beyond Width+1
	Count    uint32 // rows remaining, minus 1 (field encoding)
	ToIMEM   bool   // destination is IMEM rather than DMEM, selected by SP_MEM_ADDR bit 12
	Read     bool   // RDRAM -> SP(I/D)MEM direction; false means SP(I/D)MEM -> RDRAM
	Pending  bool
}

// DMAEngine holds the current and pending DMA transfer slots, and the
// DRAM byte slice transfers move through. A real emulator would back DRAM
// with the console's shared memory; this interpreter core owns a plain
// byte slice the caller provides so it can be tested standalone.
type DMAEngine struct {
	Current DMATransfer
	Pending DMATransfer
	Busy    bool
	Full    bool

	DRAM []byte
	Intr Interrupter
}

func (d *DMAEngine) interrupter() Interrupter {
	if d.Intr == nil {
		return noopInterrupter{}
	}
	return d.Intr
}

// StartRead begins (or queues) an RDRAM->SP(I/D)MEM transfer: spAddr/dramAddr
// are as staged in SP_MEM_ADDR/SP_DRAM_ADDR, length packs count/width/skip
// per the documented SP_RD_LEN encoding.
func (s *State) StartRead(spAddr, dramAddr, length uint32, toIMEM bool) {
	s.startDMA(spAddr, dramAddr, length, toIMEM, true)
}

// StartWrite begins (or queues) an SP(I/D)MEM->RDRAM transfer.
func (s *State) StartWrite(spAddr, dramAddr, length uint32, toIMEM bool) {
	s.startDMA(spAddr, dramAddr, length, toIMEM, false)
}

func (s *State) startDMA(spAddr, dramAddr, length uint32, toIMEM, read bool) {
	xfer := DMATransfer{
		SPAddr:   spAddr,
		DRAMAddr: dramAddr,
		Width:    length & 0xFFF,
		Skip:     (length >> 20) & 0xFFF,
		Count:    (length >> 12) & 0xFF,
		ToIMEM:   toIMEM,
		Read:     read,
		Pending:  true,
	}

	dma := &s.DMA
	if !dma.Busy {
		dma.Current = xfer
		dma.Busy = true
		s.Control.Status |= StatusDMABusy
		s.runDMA()
		return
	}
	dma.Pending = xfer
	dma.Full = true
	s.Control.Status |= StatusDMAFull
}

// runDMA executes the current transfer synchronously: real hardware moves
// one row per RDRAM cycle, but the interpreter has no cycle-accurate DRAM
// timing model to drive, so every row completes within the call that starts
// it and DMA_BUSY clears before StartRead/StartWrite returns.
func (s *State) runDMA() {
	dma := &s.DMA
	xfer := &dma.Current
	rowBytes := xfer.Width + 1
	rows := xfer.Count + 1

	mem := &s.DMEM
	if xfer.ToIMEM {
		mem = &s.IMEM
	}

	spAddr := xfer.SPAddr
	dramAddr := xfer.DRAMAddr
	for row := uint32(0); row < rows; row++ {
		for b := uint32(0); b < rowBytes; b++ {
			sp := wrapDMEM(spAddr + b)
			dr := int(dramAddr + b)
			if dr < 0 || dr >= len(dma.DRAM) {
				continue
			}
			if xfer.Read {
				mem[sp] = dma.DRAM[dr]
			} else {
				dma.DRAM[dr] = mem[sp]
			}
		}
		spAddr += rowBytes
		dramAddr += rowBytes + xfer.Skip
	}

	dma.Busy = false
	s.Control.Status &^= StatusDMABusy

	if dma.Full {
		dma.Current = dma.Pending
		dma.Pending = DMATransfer{}
		dma.Full = false
		s.Control.Status &^= StatusDMAFull
		dma.Busy = true
		s.Control.Status |= StatusDMABusy
		s.runDMA()
		return
	}

	s.interrupter().SignalInterrupt()
}

func (s *State) interrupter() Interrupter {
	return s.DMA.interrupter()
}
