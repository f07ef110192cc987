package golden

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// parseRegIndex accepts plain decimal ("8") or MIPS-style ("$t0" is not
// resolved here — fixtures use numeric indices directly for clarity).
func parseRegIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("golden: bad register index %q: %w", s, err)
	}
	if n < 0 || n > 31 {
		return 0, fmt.Errorf("golden: register index %d out of range", n)
	}
	return n, nil
}

func parseAddr(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("golden: bad DMEM address %q: %w", s, err)
	}
	return n, nil
}

func decodeHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("golden: bad hex byte string %q: %w", s, err)
	}
	return b, nil
}
