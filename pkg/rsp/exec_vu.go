package rsp

import "github.com/retrocore/rsp/pkg/inst"

// execVU dispatches one vector-unit instruction: either a memory transfer
// (handled by the vuMemHandlers table) or a COP2 compute op (handled by the
// switch below, one lane at a time over the 8-wide SIMD register file).
//
// The compute formulas here reconstruct the documented VMUL/VMAD family's
// accumulator and rounding behavior from the published algorithm shape,
// not from a verified hardware trace; corner-case rounding and saturation
// in this family is exactly the kind of bit-exact detail that needs a
// golden-vector comparison against real silicon before being trusted.
func (s *State) execVU(in inst.Instruction) {
	if inst.Catalog[in.Op].Class == inst.ClassVUMem {
		s.execVUMem(in)
		return
	}

	vs := s.VPR[in.Vs&0x1F]
	vtb := broadcastVT(s.VPR[in.Vt&0x1F], in.Element)
	var vd VReg

	switch in.Op {
	case inst.VMULF:
		// The +0x8000 rounding bias rounds VD's extraction from ACC; it is
		// not part of the stored accumulator value itself (spec.md §8's
		// VMULF(0x4000,0x4000) seed test pins ACC_LO at 0x0000, which only
		// holds if the bias never reaches the accumulator).
		for l := 0; l < Lanes; l++ {
			p := int64(int16(vs[l])) * int64(int16(vtb[l])) * 2
			s.ACC[l] = signExtend48(p)
			vd[l] = uint16(clampSigned16((s.ACC[l] + 0x8000) >> 16))
		}
	case inst.VMULU:
		for l := 0; l < Lanes; l++ {
			p := int64(int16(vs[l])) * int64(int16(vtb[l])) * 2
			s.ACC[l] = signExtend48(p)
			vd[l] = clampUnsignedAccum((s.ACC[l] + 0x8000) >> 16)
		}
	case inst.VMACF:
		for l := 0; l < Lanes; l++ {
			p := int64(int16(vs[l])) * int64(int16(vtb[l])) * 2
			s.ACC[l] = signExtend48(s.ACC[l] + p)
			vd[l] = uint16(clampSigned16(s.ACC[l] >> 16))
		}
	case inst.VMACU:
		for l := 0; l < Lanes; l++ {
			p := int64(int16(vs[l])) * int64(int16(vtb[l])) * 2
			s.ACC[l] = signExtend48(s.ACC[l] + p)
			vd[l] = clampUnsignedAccum(s.ACC[l] >> 16)
		}

	case inst.VMUDL:
		for l := 0; l < Lanes; l++ {
			p := uint32(vs[l]) * uint32(vtb[l])
			s.ACC[l] = int64(p >> 16)
			vd[l] = uint16(p >> 16)
		}
	case inst.VMADL:
		for l := 0; l < Lanes; l++ {
			p := uint32(vs[l]) * uint32(vtb[l])
			s.ACC[l] = signExtend48(s.ACC[l] + int64(p>>16))
			vd[l] = uint16(clampSigned16(s.ACC[l]))
		}
	case inst.VMUDM:
		for l := 0; l < Lanes; l++ {
			p := int32(int16(vs[l])) * int32(vtb[l])
			s.ACC[l] = signExtend48(int64(p))
			vd[l] = uint16(clampSigned16(s.ACC[l] >> 16))
		}
	case inst.VMADM:
		for l := 0; l < Lanes; l++ {
			p := int32(int16(vs[l])) * int32(vtb[l])
			s.ACC[l] = signExtend48(s.ACC[l] + int64(p))
			vd[l] = uint16(clampSigned16(s.ACC[l] >> 16))
		}
	case inst.VMUDN:
		for l := 0; l < Lanes; l++ {
			p := int32(vs[l]) * int32(int16(vtb[l]))
			s.ACC[l] = signExtend48(int64(p))
			vd[l] = uint16(clampSigned16(s.ACC[l]))
		}
	case inst.VMADN:
		for l := 0; l < Lanes; l++ {
			p := int32(vs[l]) * int32(int16(vtb[l]))
			s.ACC[l] = signExtend48(s.ACC[l] + int64(p))
			vd[l] = uint16(clampSigned16(s.ACC[l]))
		}
	case inst.VMUDH:
		for l := 0; l < Lanes; l++ {
			p := int32(int16(vs[l])) * int32(int16(vtb[l]))
			s.ACC[l] = signExtend48(int64(p) << 16)
			vd[l] = uint16(clampSigned16(int64(p)))
		}
	case inst.VMADH:
		for l := 0; l < Lanes; l++ {
			p := int32(int16(vs[l])) * int32(int16(vtb[l]))
			s.ACC[l] = signExtend48(s.ACC[l] + int64(p)<<16)
			vd[l] = uint16(clampSigned16(s.ACC[l] >> 16))
		}

	case inst.VADD:
		for l := 0; l < Lanes; l++ {
			carry := int64((s.VCO >> uint(l)) & 1)
			sum := int64(int16(vs[l])) + int64(int16(vtb[l])) + carry
			s.ACC[l] = signExtend48(sum)
			vd[l] = uint16(clampSigned16(sum))
		}
		s.VCO = 0
	case inst.VADDC:
		for l := 0; l < Lanes; l++ {
			sum := int32(uint16(vs[l])) + int32(uint16(vtb[l]))
			s.ACC[l] = signExtend48(int64(int16(sum)))
			vd[l] = uint16(int16(sum))
			if sum > 0xFFFF {
				s.VCO |= 1 << uint(l)
			} else {
				s.VCO &^= 1 << uint(l)
			}
		}
	case inst.VSUB:
		for l := 0; l < Lanes; l++ {
			carry := int64((s.VCO >> uint(l)) & 1)
			diff := int64(int16(vs[l])) - int64(int16(vtb[l])) - carry
			s.ACC[l] = signExtend48(diff)
			vd[l] = uint16(clampSigned16(diff))
		}
		s.VCO = 0
	case inst.VSUBC:
		for l := 0; l < Lanes; l++ {
			diff := int32(uint16(vs[l])) - int32(uint16(vtb[l]))
			s.ACC[l] = signExtend48(int64(int16(diff)))
			vd[l] = uint16(int16(diff))
			if diff < 0 {
				s.VCO |= 1 << uint(l)
			} else {
				s.VCO &^= 1 << uint(l)
			}
			if diff != 0 {
				s.VCO |= 1 << uint(l+8)
			}
		}
	case inst.VSAR:
		switch in.Element {
		case 8:
			for l := 0; l < Lanes; l++ {
				vd[l] = uint16(s.ACC[l] >> 32)
			}
		case 9:
			for l := 0; l < Lanes; l++ {
				vd[l] = uint16(s.ACC[l] >> 16)
			}
		case 10:
			for l := 0; l < Lanes; l++ {
				vd[l] = uint16(s.ACC[l])
			}
		}

	case inst.VLT:
		for l := 0; l < Lanes; l++ {
			eq := int16(vs[l]) == int16(vtb[l])
			carryIn := (s.VCO>>uint(l))&1 != 0
			take := int16(vs[l]) < int16(vtb[l]) || (eq && carryIn && ((s.VCO>>uint(l+8))&1 != 0))
			setCompare(s, l, take, vs[l], vtb[l], &vd)
		}
		s.VCO = 0
	case inst.VEQ:
		for l := 0; l < Lanes; l++ {
			take := int16(vs[l]) == int16(vtb[l]) && (s.VCO>>uint(l+8))&1 == 0
			setCompare(s, l, take, vs[l], vtb[l], &vd)
		}
		s.VCO = 0
	case inst.VNE:
		for l := 0; l < Lanes; l++ {
			take := int16(vs[l]) != int16(vtb[l]) || (s.VCO>>uint(l+8))&1 != 0
			setCompare(s, l, take, vs[l], vtb[l], &vd)
		}
		s.VCO = 0
	case inst.VGE:
		for l := 0; l < Lanes; l++ {
			eq := int16(vs[l]) == int16(vtb[l])
			carryIn := (s.VCO>>uint(l))&1 != 0
			take := int16(vs[l]) > int16(vtb[l]) || (eq && !(carryIn && (s.VCO>>uint(l+8))&1 != 0))
			setCompare(s, l, take, vs[l], vtb[l], &vd)
		}
		s.VCO = 0
	case inst.VMRG:
		for l := 0; l < Lanes; l++ {
			if (s.VCC>>uint(l))&1 != 0 {
				vd[l] = vs[l]
			} else {
				vd[l] = vtb[l]
			}
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}

	case inst.VCH, inst.VCL, inst.VCR:
		execVCompareEdge(s, in, vs, vtb, &vd)

	case inst.VAND:
		for l := 0; l < Lanes; l++ {
			vd[l] = vs[l] & vtb[l]
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}
	case inst.VNAND:
		for l := 0; l < Lanes; l++ {
			vd[l] = ^(vs[l] & vtb[l])
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}
	case inst.VOR:
		for l := 0; l < Lanes; l++ {
			vd[l] = vs[l] | vtb[l]
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}
	case inst.VNOR:
		for l := 0; l < Lanes; l++ {
			vd[l] = ^(vs[l] | vtb[l])
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}
	case inst.VXOR:
		for l := 0; l < Lanes; l++ {
			vd[l] = vs[l] ^ vtb[l]
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}
	case inst.VNXOR:
		for l := 0; l < Lanes; l++ {
			vd[l] = ^(vs[l] ^ vtb[l])
			s.ACC[l] = signExtend48(int64(int16(vd[l])))
		}

	case inst.VRCP, inst.VRCPL:
		s.execReciprocal(in, false, in.Op == inst.VRCPL)
		return
	case inst.VRCPH:
		s.execReciprocalHigh(in, false)
		return
	case inst.VRSQ, inst.VRSQL:
		s.execReciprocal(in, true, in.Op == inst.VRSQL)
		return
	case inst.VRSQH:
		s.execReciprocalHigh(in, true)
		return
	case inst.VMOV:
		idx := singleLaneIndex(in.Element, in.Vs)
		val := s.VPR[in.Vt&0x1F][idx]
		vd = s.VPR[in.Vd&0x1F]
		vd[idx] = val
	case inst.VNOP:
		return
	default:
		return
	}

	s.VPR[in.Vd&0x1F] = vd
}

func setCompare(s *State, lane int, take bool, vs, vt uint16, vd *VReg) {
	if take {
		vd[lane] = vs
		s.VCC |= 1 << uint(lane)
	} else {
		vd[lane] = vt
		s.VCC &^= 1 << uint(lane)
	}
	s.ACC[lane] = signExtend48(int64(int16(vd[lane])))
}

// execVCompareEdge implements VCH/VCL/VCR's combined sign-mismatch compare
// and clamp, populating VCO/VCC/VCE. This trio is the least intuitive part
// of the VU ISA; the formulas below follow the commonly documented
// decomposition (compare magnitudes when signs differ, accumulate the
// carry/equal flags into VCO/VCC, track the odd/even clamp edge in VCE)
// but, like the ROM tables, should be checked against a hardware reference.
func execVCompareEdge(s *State, in inst.Instruction, vs, vtb VReg, vd *VReg) {
	for l := 0; l < Lanes; l++ {
		a := int16(vs[l])
		b := int16(vtb[l])
		signDiff := (a < 0) != (b < 0)

		var neg, pos int16
		if signDiff {
			neg, pos = a, -b
		} else {
			neg, pos = a, b
		}

		var take bool
		switch in.Op {
		case inst.VCH:
			if signDiff {
				take = neg <= -pos
			} else {
				take = neg <= pos
			}
			if neg == -pos-1 || neg == pos {
				s.VCE |= 1 << uint(l)
			} else {
				s.VCE &^= 1 << uint(l)
			}
		case inst.VCL:
			if signDiff {
				take = (s.VCE>>uint(l))&1 != 0 || neg <= -pos
			} else {
				take = neg <= pos
			}
		case inst.VCR:
			if signDiff {
				take = neg <= -pos-1
			} else {
				take = neg <= pos
			}
		}

		if take {
			vd[l] = uint16(neg)
			s.VCC |= 1 << uint(l)
		} else {
			vd[l] = uint16(pos)
			s.VCC &^= 1 << uint(l)
		}
		if signDiff {
			s.VCO |= 1 << uint(l)
		} else {
			s.VCO &^= 1 << uint(l)
		}
		s.ACC[l] = signExtend48(int64(int16(vd[l])))
	}
}

func signExtend48(v int64) int64 {
	v &= 0xFFFFFFFFFFFF
	if v&(1<<47) != 0 {
		v |= ^int64(0xFFFFFFFFFFFF)
	}
	return v
}
