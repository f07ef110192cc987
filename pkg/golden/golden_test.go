package golden

import "testing"

func TestRunFixtureADDIU(t *testing.T) {
	f := Fixture{
		Name:  "addiu_smoke",
		Words: []string{"0x24080005"}, // ADDIU $t0, $zero, 5
		After: StateDump{GPR: map[string]uint32{"8": 5}},
	}
	out := RunFixture(f)
	if !out.Passed {
		t.Fatalf("expected pass, got: %s", out.Detail)
	}
}

func TestRunFixtureMismatchReportsDetail(t *testing.T) {
	f := Fixture{
		Name:  "addiu_wrong_expectation",
		Words: []string{"0x24080005"},
		After: StateDump{GPR: map[string]uint32{"8": 6}},
	}
	out := RunFixture(f)
	if out.Passed {
		t.Fatal("expected failure for deliberately wrong expectation")
	}
	if out.Detail == "" {
		t.Error("expected a diff detail on failure")
	}
}

func TestRunSuiteParallel(t *testing.T) {
	suite := &Suite{Fixtures: []Fixture{
		{Name: "a", Words: []string{"0x24080001"}, After: StateDump{GPR: map[string]uint32{"8": 1}}},
		{Name: "b", Words: []string{"0x24090002"}, After: StateDump{GPR: map[string]uint32{"9": 2}}},
		{Name: "c", Words: []string{"0x240A0003"}, After: StateDump{GPR: map[string]uint32{"10": 3}}},
	}}
	outcomes := RunSuite(suite, 2)
	report := NewReport(outcomes)
	if !report.Passed() {
		t.Fatalf("expected all fixtures to pass:\n%s", report.String())
	}
}

func TestDMEMDump(t *testing.T) {
	f := Fixture{
		Name:   "store_byte",
		Words:  []string{"0xA0880000"}, // SB $t0, 0($a0)
		Before: StateDump{GPR: map[string]uint32{"8": 0x42, "4": 0x10}},
		After:  StateDump{DMEM: map[string]string{"16": "42"}},
	}
	out := RunFixture(f)
	if !out.Passed {
		t.Fatalf("expected pass, got: %s", out.Detail)
	}
}
