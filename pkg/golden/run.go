package golden

import (
	"fmt"
	"sync"

	"github.com/retrocore/rsp/pkg/rsp"
)

// Outcome is one fixture's verdict: whether the interpreter's final state
// matched the fixture's expected state, and a human-readable diff if not.
type Outcome struct {
	Name   string
	Passed bool
	Detail string
}

// RunFixture executes one fixture and compares the resulting state against
// its expected After dump. Only the fields the fixture's After block
// actually sets are compared — an omitted field means "don't care", not
// "expect zero", since most fixtures care about one register or one
// memory region, not the whole architectural state.
func RunFixture(f Fixture) Outcome {
	var s rsp.State
	if err := f.Before.Apply(&s); err != nil {
		return Outcome{Name: f.Name, Passed: false, Detail: err.Error()}
	}
	words, err := decodeWords(f.Words)
	if err != nil {
		return Outcome{Name: f.Name, Passed: false, Detail: err.Error()}
	}
	loadIMEM(&s, words)

	max := f.MaxSteps
	if max == 0 {
		max = len(words)
	}
	if _, err := s.Run(max); err != nil {
		return Outcome{Name: f.Name, Passed: false, Detail: "execution fault: " + err.Error()}
	}

	if mismatch := f.After.diff(&s); mismatch != "" {
		return Outcome{Name: f.Name, Passed: false, Detail: mismatch}
	}
	return Outcome{Name: f.Name, Passed: true}
}

// diff reports the first mismatch between the dump's specified fields and
// the actual state, or "" if everything specified matches.
func (d StateDump) diff(s *rsp.State) string {
	for k, want := range d.GPR {
		idx, err := parseRegIndex(k)
		if err != nil {
			return err.Error()
		}
		if s.GPR[idx] != want {
			return fmt.Sprintf("GPR[%d] = 0x%x, want 0x%x", idx, s.GPR[idx], want)
		}
	}
	for k, lanes := range d.VPR {
		idx, err := parseRegIndex(k)
		if err != nil {
			return err.Error()
		}
		want := lanesToVReg(lanes)
		if s.VPR[idx] != want {
			return fmt.Sprintf("VPR[%d] = %v, want %v", idx, s.VPR[idx], want)
		}
	}
	for k, hexBytes := range d.DMEM {
		addr, err := parseAddr(k)
		if err != nil {
			return err.Error()
		}
		bs, err := decodeHexBytes(hexBytes)
		if err != nil {
			return err.Error()
		}
		for i, want := range bs {
			if s.DMEM[addr+i] != want {
				return fmt.Sprintf("DMEM[%d] = 0x%02x, want 0x%02x", addr+i, s.DMEM[addr+i], want)
			}
		}
	}
	if d.PC != nil && s.PC != *d.PC {
		return fmt.Sprintf("PC = 0x%x, want 0x%x", s.PC, *d.PC)
	}
	if d.VCO != nil && s.VCO != *d.VCO {
		return fmt.Sprintf("VCO = 0x%x, want 0x%x", s.VCO, *d.VCO)
	}
	if d.VCC != nil && s.VCC != *d.VCC {
		return fmt.Sprintf("VCC = 0x%x, want 0x%x", s.VCC, *d.VCC)
	}
	if d.Status != nil && s.Control.Status != *d.Status {
		return fmt.Sprintf("SP_STATUS = 0x%x, want 0x%x", s.Control.Status, *d.Status)
	}
	return ""
}

// RunSuite replays every fixture in s concurrently, using a fixed-size
// worker pool, and returns one Outcome per fixture in input order.
func RunSuite(s *Suite, workers int) []Outcome {
	if workers <= 0 {
		workers = 4
	}
	outcomes := make([]Outcome, len(s.Fixtures))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = RunFixture(s.Fixtures[i])
			}
		}()
	}
	for i := range s.Fixtures {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
