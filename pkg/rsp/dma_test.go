package rsp

import "testing"

func TestDMARoundTrip(t *testing.T) {
	var s State
	s.DMA.DRAM = make([]byte, 0x10000)
	for i := range s.DMA.DRAM[0x1000 : 0x1000+32] {
		s.DMA.DRAM[0x1000+i] = byte(i + 1)
	}

	// length: width=31 (32 bytes), count=0 (1 row), skip=0
	s.StartRead(0, 0x1000, 31, false)
	if s.DMA.Busy {
		t.Error("expected synchronous DMA to complete within StartRead")
	}
	for i := 0; i < 32; i++ {
		if s.DMEM[i] != byte(i+1) {
			t.Fatalf("DMEM[%d] = %d, want %d", i, s.DMEM[i], i+1)
		}
	}

	for i := range s.DMEM[:16] {
		s.DMEM[i] = byte(0xA0 + i)
	}
	s.StartWrite(0, 0x2000, 15, false) // width=15 -> 16 bytes
	for i := 0; i < 16; i++ {
		if s.DMA.DRAM[0x2000+i] != byte(0xA0+i) {
			t.Errorf("DRAM[0x%x] = 0x%x, want 0x%x", 0x2000+i, s.DMA.DRAM[0x2000+i], 0xA0+i)
		}
	}
}

func TestDMAQueuesPendingWhenBusy(t *testing.T) {
	var s State
	s.DMA.DRAM = make([]byte, 0x10000)
	s.DMA.Busy = true // simulate an in-flight transfer the synchronous model hasn't drained
	s.Control.Status |= StatusDMABusy

	s.StartRead(0, 0, 0, false)
	if !s.DMA.Full {
		t.Error("expected DMA_FULL set when a transfer starts while busy")
	}
	if s.Control.Status&StatusDMAFull == 0 {
		t.Error("expected SP_STATUS DMA_FULL bit set")
	}
}

type recordingInterrupter struct{ fired int }

func (r *recordingInterrupter) SignalInterrupt() { r.fired++ }

func TestDMASignalsInterrupt(t *testing.T) {
	var s State
	s.DMA.DRAM = make([]byte, 64)
	irq := &recordingInterrupter{}
	s.DMA.Intr = irq
	s.StartRead(0, 0, 3, false)
	if irq.fired != 1 {
		t.Errorf("interrupt fired %d times, want 1", irq.fired)
	}
}
