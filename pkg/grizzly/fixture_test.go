package grizzly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/shantanunp/grizzly/internal/jsonbridge"
	"github.com/shantanunp/grizzly/internal/value"
)

// loadFixture reads a template/input pair from testdata/fixtures/<dir>
// and compiles+decodes both halves, failing the test on any error.
func loadFixture(t *testing.T, dir, templateFile, inputFile string) (*Program, value.Value) {
	t.Helper()
	base := filepath.Join("..", "..", "testdata", "fixtures", dir)

	src, err := os.ReadFile(filepath.Join(base, templateFile))
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	prog, err := Compile(string(src))
	if err != nil {
		t.Fatalf("compiling %s/%s: %v", dir, templateFile, err)
	}

	raw, err := os.ReadFile(filepath.Join(base, inputFile))
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}
	input, err := jsonbridge.Decode(raw)
	if err != nil {
		t.Fatalf("decoding %s/%s: %v", dir, inputFile, err)
	}
	return prog, input
}

func dictGet(t *testing.T, d value.Value, key string) value.Value {
	t.Helper()
	dict, ok := d.(*value.Dict)
	if !ok {
		t.Fatalf("expected a dict, got %s", d.TypeName())
	}
	v, ok := dict.Get(key)
	if !ok {
		t.Fatalf("dict missing key %q", key)
	}
	return v
}

// TestEmptyBodyFixture covers §8 literal scenario 1: a transform that
// only assigns OUTPUT = {} returns an empty dict with a clean report.
func TestEmptyBodyFixture(t *testing.T) {
	prog, input := loadFixture(t, "empty_body", "template.grizzly", "input.json")

	out, report, _, err := prog.ExecuteWithValidation(input, DefaultConfig())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	dict, ok := out.(*value.Dict)
	if !ok || dict.Len() != 0 {
		t.Fatalf("expected empty dict output, got %#v", out)
	}
	if !report.IsClean() {
		t.Fatalf("expected a clean report, got %+v", report.Summarize())
	}

	snaps.MatchSnapshot(t, "output", dict.String())
}

// TestMismoBorrowersFixture covers §8 literal scenario 2.
func TestMismoBorrowersFixture(t *testing.T) {
	prog, input := loadFixture(t, "mismo_borrowers", "template.grizzly", "input.json")

	out, err := prog.Execute(input, DefaultConfig())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	primary := dictGet(t, dictGet(t, out, "primaryBorrower"), "fullName")
	if !value.Equal(primary, value.NewString("Jane Doe")) {
		t.Errorf("primaryBorrower.fullName = %s, want Jane Doe", primary.String())
	}

	coBorrowers, ok := dictGet(t, out, "coBorrowers").(*value.List)
	if !ok || len(coBorrowers.Items) != 1 {
		t.Fatalf("expected a single-element coBorrowers list, got %#v", dictGet(t, out, "coBorrowers"))
	}
	wantCoBorrower := value.NewDict()
	wantCoBorrower.Set("fullName", value.NewString("John Doe"))
	wantCoBorrower.Set("income", value.Int(72000))
	if !value.Equal(coBorrowers.Items[0], wantCoBorrower) {
		t.Errorf("coBorrowers[0] = %s, want %s", coBorrowers.Items[0].String(), wantCoBorrower.String())
	}

	if total := dictGet(t, out, "totalAssetValue"); !value.Equal(total, value.Int(0)) {
		t.Errorf("totalAssetValue = %s, want 0", total.String())
	}
	if score := dictGet(t, out, "creditScore"); !value.IsNull(score) {
		t.Errorf("creditScore = %s, want null", score.String())
	}
}

// TestSafeNavShortCircuit covers §8 literal scenario 3: a `?.` chain
// through a null intermediate yields exactly one EXPECTED_NULL record
// and no path errors.
func TestSafeNavShortCircuit(t *testing.T) {
	prog, input := loadFixture(t, "safe_nav", "template.grizzly", "input.json")

	out, report, _, err := prog.ExecuteWithValidation(input, DefaultConfig())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if city := dictGet(t, out, "city"); !value.IsNull(city) {
		t.Errorf("city = %s, want null", city.String())
	}
	if report.HasPathErrors() {
		t.Errorf("expected zero path errors, got %+v", report.Summarize())
	}
	if got := len(report.ByStatus("EXPECTED_NULL")); got != 1 {
		t.Errorf("expected exactly one EXPECTED_NULL record, got %d", got)
	}
}

// TestStrictPathBreak covers §8 literal scenario 4: the same input
// without `?.` raises a runtime error in STRICT mode and records
// exactly one PATH_BROKEN access in SAFE mode.
func TestStrictPathBreak(t *testing.T) {
	prog, input := loadFixture(t, "safe_nav", "strict_template.grizzly", "input.json")

	strictCfg := DefaultConfig()
	strictCfg.NullHandling = Strict
	if _, err := prog.Execute(input, strictCfg); err == nil {
		t.Fatal("expected a runtime error in STRICT mode, got none")
	}

	safeCfg := DefaultConfig()
	safeCfg.NullHandling = Safe
	out, report, _, err := prog.ExecuteWithValidation(input, safeCfg)
	if err != nil {
		t.Fatalf("execute in SAFE mode: %v", err)
	}
	if city := dictGet(t, out, "city"); !value.IsNull(city) {
		t.Errorf("city = %s, want null", city.String())
	}
	if got := len(report.ByStatus("PATH_BROKEN")); got != 1 {
		t.Errorf("expected exactly one PATH_BROKEN record, got %d", got)
	}
}
