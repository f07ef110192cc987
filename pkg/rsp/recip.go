package rsp

import "github.com/retrocore/rsp/pkg/inst"

// The VRCP/VRCPL/VRCPH/VRSQ/VRSQL/VRSQH family shares a single 32-bit
// reciprocal/rsqrt pipeline gated by DivIn/DivOut/DivInLoaded (spec.md
// §4.4's protocol):
//
//   - VRCP/VRSQ sign-extend VT<se> to 32 bits and run the full ROM lookup.
//   - VRCPH/VRSQH never compute anything: they hand back the *previous*
//     DivOut, then stage VT<se> into DivIn and set DivInLoaded.
//   - VRCPL/VRSQL, when DivInLoaded, concatenate (DivIn<<16)|VT<se> into the
//     true 32-bit dividend before the lookup; otherwise they behave exactly
//     like VRCP/VRSQ. Either way they clear DivInLoaded afterward.
//
// All six also side-load ACC_LO with the full VT register, across every
// lane, not just the one the op reads or writes.

func (s *State) execReciprocal(in inst.Instruction, sqrt, lowVariant bool) {
	se := singleLaneIndex(in.Element, in.Vs)
	vt := s.VPR[in.Vt&0x1F]

	var dividend int32
	if lowVariant && s.DivInLoaded {
		dividend = int32(s.DivIn)<<16 | int32(vt[se])
	} else {
		dividend = int32(int16(vt[se]))
	}

	var quotient int32
	if sqrt {
		quotient = lookupRsqrt(dividend)
	} else {
		quotient = lookupRecip(dividend)
	}

	s.DivOut = uint16(quotient >> 16)
	if lowVariant {
		s.DivInLoaded = false
	}
	sideLoadAccLo(s, vt)

	vd := s.VPR[in.Vd&0x1F]
	vd[se] = uint16(quotient)
	s.VPR[in.Vd&0x1F] = vd
}

func (s *State) execReciprocalHigh(in inst.Instruction, sqrt bool) {
	se := singleLaneIndex(in.Element, in.Vs)
	vt := s.VPR[in.Vt&0x1F]

	vd := s.VPR[in.Vd&0x1F]
	vd[se] = s.DivOut
	s.VPR[in.Vd&0x1F] = vd

	s.DivIn = vt[se]
	s.DivInLoaded = true
	sideLoadAccLo(s, vt)
}

// sideLoadAccLo implements the reciprocal family's ACC_LO ← VT side effect:
// every lane's low 16 accumulator bits take the matching VT lane verbatim,
// leaving ACC_MD/ACC_HI untouched.
func sideLoadAccLo(s *State, vt VReg) {
	for l := 0; l < Lanes; l++ {
		s.ACC[l] = (s.ACC[l] &^ 0xFFFF) | int64(vt[l])
	}
}
