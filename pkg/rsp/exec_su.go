package rsp

import "github.com/retrocore/rsp/pkg/inst"

// writeGPR writes v to GPR r, except that GPR 0 is hardwired to zero and
// silently discards writes, matching every MIPS-family register file.
func (s *State) writeGPR(r uint8, v uint32) {
	if r != 0 {
		s.GPR[r] = v
	}
}

// execSU dispatches one scalar-unit instruction, mutating s in place. pc is
// the address the instruction was fetched from, used for PC-relative branch
// targets and link addresses.
func (s *State) execSU(in inst.Instruction, pc uint32) {
	rs := s.GPR[in.Rs]
	rt := s.GPR[in.Rt]

	switch in.Op {
	case inst.ADD, inst.ADDU:
		s.writeGPR(in.Rd, rs+rt)
	case inst.SUB, inst.SUBU:
		s.writeGPR(in.Rd, rs-rt)
	case inst.AND:
		s.writeGPR(in.Rd, rs&rt)
	case inst.OR:
		s.writeGPR(in.Rd, rs|rt)
	case inst.XOR:
		s.writeGPR(in.Rd, rs^rt)
	case inst.NOR:
		s.writeGPR(in.Rd, ^(rs | rt))
	case inst.SLT:
		s.writeGPR(in.Rd, boolToWord(int32(rs) < int32(rt)))
	case inst.SLTU:
		s.writeGPR(in.Rd, boolToWord(rs < rt))
	case inst.SLL:
		s.writeGPR(in.Rd, rt<<in.Sa)
	case inst.SRL:
		s.writeGPR(in.Rd, rt>>in.Sa)
	case inst.SRA:
		s.writeGPR(in.Rd, uint32(int32(rt)>>in.Sa))
	case inst.SLLV:
		s.writeGPR(in.Rd, rt<<(rs&0x1F))
	case inst.SRLV:
		s.writeGPR(in.Rd, rt>>(rs&0x1F))
	case inst.SRAV:
		s.writeGPR(in.Rd, uint32(int32(rt)>>(rs&0x1F)))
	case inst.MULT:
		p := int64(int32(rs)) * int64(int32(rt))
		s.HI, s.LO = uint32(p>>32), uint32(p)
	case inst.MULTU:
		p := uint64(rs) * uint64(rt)
		s.HI, s.LO = uint32(p>>32), uint32(p)
	case inst.DIV:
		if rt != 0 {
			s.LO, s.HI = uint32(int32(rs)/int32(rt)), uint32(int32(rs)%int32(rt))
		}
	case inst.DIVU:
		if rt != 0 {
			s.LO, s.HI = rs/rt, rs%rt
		}

	case inst.ADDI, inst.ADDIU:
		s.writeGPR(in.Rt, rs+signExtend16(in.Imm))
	case inst.ANDI:
		s.writeGPR(in.Rt, rs&uint32(in.Imm))
	case inst.ORI:
		s.writeGPR(in.Rt, rs|uint32(in.Imm))
	case inst.XORI:
		s.writeGPR(in.Rt, rs^uint32(in.Imm))
	case inst.LUI:
		s.writeGPR(in.Rt, uint32(in.Imm)<<16)
	case inst.SLTI:
		s.writeGPR(in.Rt, boolToWord(int32(rs) < int32(signExtend16(in.Imm))))
	case inst.SLTIU:
		s.writeGPR(in.Rt, boolToWord(rs < signExtend16(in.Imm)))

	case inst.BEQ:
		s.branchIf(pc, in.Imm, rs == rt)
	case inst.BNE:
		s.branchIf(pc, in.Imm, rs != rt)
	case inst.BLEZ:
		s.branchIf(pc, in.Imm, int32(rs) <= 0)
	case inst.BGTZ:
		s.branchIf(pc, in.Imm, int32(rs) > 0)
	case inst.BLTZ:
		s.branchIf(pc, in.Imm, int32(rs) < 0)
	case inst.BGEZ:
		s.branchIf(pc, in.Imm, int32(rs) >= 0)
	case inst.BLTZAL:
		s.writeGPR(31, pc+8)
		s.branchIf(pc, in.Imm, int32(rs) < 0)
	case inst.BGEZAL:
		s.writeGPR(31, pc+8)
		s.branchIf(pc, in.Imm, int32(rs) >= 0)

	case inst.J:
		s.setBranch(jumpTarget(pc, in.Imm))
	case inst.JAL:
		s.writeGPR(31, pc+8)
		s.setBranch(jumpTarget(pc, in.Imm))
	case inst.JR:
		s.setBranch(rs & (MemSize - 1))
	case inst.JALR:
		dest := in.Rd
		if dest == 0 {
			dest = 31
		}
		s.writeGPR(dest, pc+8)
		s.setBranch(rs & (MemSize - 1))

	case inst.LB:
		s.writeGPR(in.Rt, uint32(int32(int8(s.ReadDMEMByte(rs+signExtend16(in.Imm))))))
	case inst.LBU:
		s.writeGPR(in.Rt, uint32(s.ReadDMEMByte(rs+signExtend16(in.Imm))))
	case inst.LH:
		s.writeGPR(in.Rt, uint32(int32(int16(s.ReadDMEMHalf(rs+signExtend16(in.Imm))))))
	case inst.LHU:
		s.writeGPR(in.Rt, uint32(s.ReadDMEMHalf(rs+signExtend16(in.Imm))))
	case inst.LW, inst.LWU:
		s.writeGPR(in.Rt, s.ReadDMEMWord(rs+signExtend16(in.Imm)))
	case inst.SB:
		s.WriteDMEMByte(rs+signExtend16(in.Imm), uint8(rt))
	case inst.SH:
		s.WriteDMEMHalf(rs+signExtend16(in.Imm), uint16(rt))
	case inst.SW:
		s.WriteDMEMWord(rs+signExtend16(in.Imm), rt)

	case inst.MFC0:
		s.writeGPR(in.Rt, s.readCP0(in.Vs))
	case inst.MTC0:
		s.writeCP0(in.Vs, rt)
	case inst.MFC2:
		s.writeGPR(in.Rt, s.readVPRHalf(in.Vs, in.Element))
	case inst.MTC2:
		s.writeVPRHalf(in.Vs, in.Element, uint16(rt))
	case inst.CFC2:
		s.writeGPR(in.Rt, s.readVCtrl(in.Vs))
	case inst.CTC2:
		s.writeVCtrl(in.Vs, rt)

	case inst.BREAK:
		s.Control.SetBroke()
		if s.Control.InterruptPending() {
			s.interrupter().SignalInterrupt()
		}
	case inst.NOP, inst.OpInvalid:
		// OpInvalid decodes here deliberately: reserved SU encodings are
		// silicon no-ops from the interpreter's point of view, matching
		// Decode's no-fault guarantee.
	}
}

func (s *State) branchIf(pc uint32, imm uint16, take bool) {
	if take {
		s.setBranch(pc + 4 + signExtend16(imm)<<2)
	}
}

func (s *State) setBranch(target uint32) {
	s.Branching = true
	s.BranchPC = target
}

func jumpTarget(pc uint32, imm uint16) uint32 {
	return (pc+4)&0xFFFFF000 | uint32(imm)<<2
}

func signExtend16(v uint16) uint32 {
	return uint32(int32(int16(v)))
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// readCP0/writeCP0 implement the SP control register file accessed via
// MFC0/MTC0's 5-bit register-select field, per the documented SP register
// map (SP_MEM_ADDR..SP_SEMAPHORE).
func (s *State) readCP0(reg uint8) uint32 {
	switch reg {
	case 0:
		return s.Control.MemAddr
	case 1:
		return s.Control.DRAMAddr
	case 4:
		return s.Control.ReadStatus()
	case 5:
		return boolToWord(s.DMA.Full)
	case 6:
		return boolToWord(s.DMA.Busy)
	case 7:
		return boolToWord(s.Control.AcquireSemaphore())
	}
	return 0
}

func (s *State) writeCP0(reg uint8, v uint32) {
	switch reg {
	case 0:
		s.Control.MemAddr = v
	case 1:
		s.Control.DRAMAddr = v
	case 2:
		toIMEM := s.Control.MemAddr&0x1000 != 0
		s.StartRead(s.Control.MemAddr&0xFFF, s.Control.DRAMAddr, v, toIMEM)
	case 3:
		toIMEM := s.Control.MemAddr&0x1000 != 0
		s.StartWrite(s.Control.MemAddr&0xFFF, s.Control.DRAMAddr, v, toIMEM)
	case 4:
		s.Control.WriteStatusSU(v)
	case 7:
		s.Control.ReleaseSemaphore()
	}
}
