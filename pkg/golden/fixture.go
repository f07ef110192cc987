// Package golden replays golden-vector fixture files against the rsp
// interpreter and reports pass/fail per fixture, in parallel across the
// fixture set.
package golden

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/retrocore/rsp/pkg/rsp"
)

// Fixture is one golden-vector test case: an initial machine state, a
// sequence of raw instruction words to execute, and the expected resulting
// state. Instruction words and DMEM contents are hex strings in the TOML
// source; vector registers are lists of lane values.
type Fixture struct {
	Name  string   `toml:"name"`
	Words []string `toml:"words"` // hex-encoded 32-bit instruction words, IMEM order

	Before StateDump `toml:"before"`
	After  StateDump `toml:"after"`

	// MaxSteps bounds execution length; defaults to len(Words) if zero,
	// since most fixtures run exactly the instructions they provide.
	MaxSteps int `toml:"max_steps"`
}

// StateDump is the subset of rsp.State a fixture can specify: registers,
// vector registers, and sparse memory writes (full 4KiB dumps would make
// fixture files unreadable, so memory is specified as address->hex-bytes
// pairs instead).
type StateDump struct {
	GPR    map[string]uint32  `toml:"gpr"`
	VPR    map[string][]int64 `toml:"vpr"` // 8 lane values per register; TOML has no fixed-size array type
	DMEM   map[string]string  `toml:"dmem"` // address (decimal string) -> hex byte string
	PC     *uint32            `toml:"pc"`
	VCO    *uint16            `toml:"vco"`
	VCC    *uint16            `toml:"vcc"`
	Status *uint32            `toml:"status"`
}

// Suite is a collection of fixtures loaded from one TOML file.
type Suite struct {
	Fixtures []Fixture `toml:"fixture"`
}

// LoadSuite reads and parses a fixture file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("golden: reading %s: %w", path, err)
	}
	var s Suite
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("golden: parsing %s: %w", path, err)
	}
	return &s, nil
}

// Apply builds an rsp.State from a StateDump, starting from the zero
// value — any field the dump doesn't mention stays zero.
func (d StateDump) Apply(s *rsp.State) error {
	for k, v := range d.GPR {
		idx, err := parseRegIndex(k)
		if err != nil {
			return err
		}
		s.GPR[idx] = v
	}
	for k, lanes := range d.VPR {
		idx, err := parseRegIndex(k)
		if err != nil {
			return err
		}
		s.VPR[idx] = lanesToVReg(lanes)
	}
	for k, hexBytes := range d.DMEM {
		addr, err := parseAddr(k)
		if err != nil {
			return err
		}
		bs, err := decodeHexBytes(hexBytes)
		if err != nil {
			return err
		}
		for i, b := range bs {
			s.DMEM[int(addr)+i] = b
		}
	}
	if d.PC != nil {
		s.PC = *d.PC
	}
	if d.VCO != nil {
		s.VCO = *d.VCO
	}
	if d.VCC != nil {
		s.VCC = *d.VCC
	}
	if d.Status != nil {
		s.Control.Status = *d.Status
	}
	return nil
}

// decodeWords converts a fixture's hex word strings into instruction
// words; loadIMEM places them in IMEM starting at address 0.
func decodeWords(words []string) ([]uint32, error) {
	out := make([]uint32, len(words))
	for i, w := range words {
		var v uint32
		if _, err := fmt.Sscanf(w, "0x%x", &v); err != nil {
			return nil, fmt.Errorf("golden: bad instruction word %q: %w", w, err)
		}
		out[i] = v
	}
	return out, nil
}

func lanesToVReg(lanes []int64) rsp.VReg {
	var v rsp.VReg
	for i := 0; i < len(lanes) && i < rsp.Lanes; i++ {
		v[i] = uint16(lanes[i])
	}
	return v
}

func loadIMEM(s *rsp.State, words []uint32) {
	for i, w := range words {
		addr := uint32(i * 4)
		s.IMEM[addr] = byte(w >> 24)
		s.IMEM[addr+1] = byte(w >> 16)
		s.IMEM[addr+2] = byte(w >> 8)
		s.IMEM[addr+3] = byte(w)
	}
}
