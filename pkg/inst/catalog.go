package inst

// Class identifies which dispatch table an Op belongs to, matching the
// decode classes in spec.md §4.1.
type Class uint8

const (
	ClassSU     Class = iota // scalar unit: ALU, branch, load/store, moves
	ClassVUMem               // LWC2/SWC2 vector memory transfers
	ClassVUComp              // COP2 compute (func field, bit 25=1)
)

// Info holds static metadata for an Op.
type Info struct {
	Mnemonic  string
	Class     Class
	HasImm    bool // SU: reads the 16-bit immediate field
	IsBranch  bool // SU: branch/jump — operates on PC, not GPR[rd]
	IsLoad    bool // SU or VU mem: reads DMEM
	IsStore   bool // SU or VU mem: writes DMEM
	AccessLen int  // VU mem: base transfer size in bytes (0 for non-mem ops)
}

// Catalog maps each Op to its Info. Populated by init().
var Catalog [OpCodeCount]Info

func init() {
	su := []struct {
		op       Op
		mnemonic string
		imm      bool
		branch   bool
	}{
		{ADD, "ADD", false, false}, {ADDU, "ADDU", false, false},
		{SUB, "SUB", false, false}, {SUBU, "SUBU", false, false},
		{AND, "AND", false, false}, {OR, "OR", false, false},
		{XOR, "XOR", false, false}, {NOR, "NOR", false, false},
		{SLL, "SLL", false, false}, {SRL, "SRL", false, false}, {SRA, "SRA", false, false},
		{SLLV, "SLLV", false, false}, {SRLV, "SRLV", false, false}, {SRAV, "SRAV", false, false},
		{SLT, "SLT", false, false}, {SLTU, "SLTU", false, false},
		{MULT, "MULT", false, false}, {MULTU, "MULTU", false, false},
		{DIV, "DIV", false, false}, {DIVU, "DIVU", false, false},

		{ADDI, "ADDI", true, false}, {ADDIU, "ADDIU", true, false},
		{ANDI, "ANDI", true, false}, {ORI, "ORI", true, false}, {XORI, "XORI", true, false},
		{LUI, "LUI", true, false},
		{SLTI, "SLTI", true, false}, {SLTIU, "SLTIU", true, false},

		{BEQ, "BEQ", true, true}, {BNE, "BNE", true, true},
		{BLEZ, "BLEZ", true, true}, {BGTZ, "BGTZ", true, true},
		{BLTZ, "BLTZ", true, true}, {BGEZ, "BGEZ", true, true},
		{BLTZAL, "BLTZAL", true, true}, {BGEZAL, "BGEZAL", true, true},

		{J, "J", true, true}, {JAL, "JAL", true, true},
		{JR, "JR", false, true}, {JALR, "JALR", false, true},

		{MFC0, "MFC0", false, false}, {MTC0, "MTC0", false, false},
		{MFC2, "MFC2", false, false}, {MTC2, "MTC2", false, false},
		{CFC2, "CFC2", false, false}, {CTC2, "CTC2", false, false},

		{BREAK, "BREAK", false, false}, {NOP, "NOP", false, false},
	}
	for _, e := range su {
		Catalog[e.op] = Info{Mnemonic: e.mnemonic, Class: ClassSU, HasImm: e.imm, IsBranch: e.branch}
	}

	ldst := []struct {
		op       Op
		mnemonic string
		load     bool
	}{
		{LB, "LB", true}, {LBU, "LBU", true}, {LH, "LH", true}, {LHU, "LHU", true},
		{LW, "LW", true}, {LWU, "LWU", true},
		{SB, "SB", false}, {SH, "SH", false}, {SW, "SW", false},
	}
	for _, e := range ldst {
		Catalog[e.op] = Info{
			Mnemonic: e.mnemonic, Class: ClassSU, HasImm: true,
			IsLoad: e.load, IsStore: !e.load,
		}
	}

	vumem := []struct {
		op       Op
		mnemonic string
		size     int
		load     bool
	}{
		{LBV, "LBV", 1, true}, {SBV, "SBV", 1, false},
		{LSV, "LSV", 2, true}, {SSV, "SSV", 2, false},
		{LLV, "LLV", 4, true}, {SLV, "SLV", 4, false},
		{LDV, "LDV", 8, true}, {SDV, "SDV", 8, false},
		{LQV, "LQV", 16, true}, {SQV, "SQV", 16, false},
		{LRV, "LRV", 16, true}, {SRV, "SRV", 16, false},
		{LPV, "LPV", 8, true}, {SPV, "SPV", 8, false},
		{LUV, "LUV", 8, true}, {SUV, "SUV", 8, false},
		{LHV, "LHV", 8, true}, {SHV, "SHV", 8, false},
		{LFV, "LFV", 8, true}, {SFV, "SFV", 8, false},
		{LTV, "LTV", 16, true}, {STV, "STV", 16, false},
	}
	for _, e := range vumem {
		Catalog[e.op] = Info{
			Mnemonic: e.mnemonic, Class: ClassVUMem, AccessLen: e.size,
			IsLoad: e.load, IsStore: !e.load,
		}
	}

	comp := []struct {
		op       Op
		mnemonic string
	}{
		{VMULF, "VMULF"}, {VMULU, "VMULU"},
		{VMUDL, "VMUDL"}, {VMUDM, "VMUDM"}, {VMUDN, "VMUDN"}, {VMUDH, "VMUDH"},
		{VMACF, "VMACF"}, {VMACU, "VMACU"},
		{VMADL, "VMADL"}, {VMADM, "VMADM"}, {VMADN, "VMADN"}, {VMADH, "VMADH"},
		{VADD, "VADD"}, {VADDC, "VADDC"}, {VSUB, "VSUB"}, {VSUBC, "VSUBC"},
		{VSAR, "VSAR"},
		{VLT, "VLT"}, {VEQ, "VEQ"}, {VNE, "VNE"}, {VGE, "VGE"},
		{VCL, "VCL"}, {VCH, "VCH"}, {VCR, "VCR"}, {VMRG, "VMRG"},
		{VAND, "VAND"}, {VNAND, "VNAND"}, {VOR, "VOR"}, {VNOR, "VNOR"},
		{VXOR, "VXOR"}, {VNXOR, "VNXOR"},
		{VRCP, "VRCP"}, {VRCPL, "VRCPL"}, {VRCPH, "VRCPH"}, {VMOV, "VMOV"},
		{VRSQ, "VRSQ"}, {VRSQL, "VRSQL"}, {VRSQH, "VRSQH"},
		{VNOP, "VNOP"},
	}
	for _, e := range comp {
		Catalog[e.op] = Info{Mnemonic: e.mnemonic, Class: ClassVUComp}
	}
}

// Mnemonic returns the catalog mnemonic for op, or "???" if unset.
func Mnemonic(op Op) string {
	if int(op) >= OpCodeCount {
		return "???"
	}
	m := Catalog[op].Mnemonic
	if m == "" {
		return "???"
	}
	return m
}
