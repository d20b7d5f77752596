package tracker

import (
	"strings"
	"testing"

	"github.com/shantanunp/grizzly/internal/value"
)

func TestNilTrackerRecordIsNoOp(t *testing.T) {
	var tr *Tracker
	tr.Record(NewAccessRecord("INPUT.x", Success, "", value.Int(1), 1, false))
	if got := tr.Records(); got != nil {
		t.Errorf("Records() on a nil Tracker = %v, want nil", got)
	}
}

// TestSummaryPartitionsEveryRecord covers §8's invariant:
// successCount+errorCount+expectedNullCount+nullValueCount+emptyValueCount
// equals totalRecords in SAFE mode.
func TestSummaryPartitionsEveryRecord(t *testing.T) {
	tr := New()
	tr.Record(NewAccessRecord("a", Success, "", value.Int(1), 1, false))
	tr.Record(NewAccessRecord("a.b", PathBroken, "b", nil, 2, false))
	tr.Record(NewAccessRecord("a.c", KeyNotFound, "c", nil, 3, false))
	tr.Record(NewAccessRecord("a.d", IndexOutOfBounds, "d", nil, 4, false))
	tr.Record(NewAccessRecord("a.e", ValueNull, "", value.NullValue, 5, false))
	tr.Record(NewAccessRecord("a.f", ValueEmpty, "", value.NewString(""), 6, false))
	tr.Record(NewAccessRecord("a.g", ExpectedNull, "g", value.NullValue, 7, true))

	summary := tr.Report().Summarize()
	errorCount := summary.PathErrors + summary.KeyNotFound + summary.IndexErrors
	sum := summary.Successful + errorCount + summary.ExpectedNulls + summary.NullValues + summary.EmptyValues
	if sum != summary.Total {
		t.Errorf("partitioned sum = %d, want total = %d", sum, summary.Total)
	}
	if summary.Total != 7 {
		t.Errorf("Total = %d, want 7", summary.Total)
	}
}

func TestExpectedNullIsNeverAnError(t *testing.T) {
	tr := New()
	tr.Record(NewAccessRecord("a.b", ExpectedNull, "b", value.NullValue, 1, true))

	report := tr.Report()
	if report.HasAnyErrors() {
		t.Error("a report containing only EXPECTED_NULL should have no errors")
	}
	if !report.IsClean() {
		t.Error("a report containing only EXPECTED_NULL should be clean")
	}
}

func TestPathBrokenSegmentIsSubstringOfFullPath(t *testing.T) {
	tr := New()
	tr.Record(NewAccessRecord("INPUT.deal.loan.city", PathBroken, "loan", nil, 1, false))

	for _, rec := range tr.Report().ByStatus(PathBroken) {
		if !strings.Contains(rec.FullPath, rec.BrokenSegment) {
			t.Errorf("FullPath %q does not contain BrokenSegment %q", rec.FullPath, rec.BrokenSegment)
		}
	}
}

func TestGroupByBrokenSegmentAndLine(t *testing.T) {
	tr := New()
	tr.Record(NewAccessRecord("a.b", PathBroken, "b", nil, 10, false))
	tr.Record(NewAccessRecord("x.b", PathBroken, "b", nil, 11, false))
	tr.Record(NewAccessRecord("a.c", KeyNotFound, "c", nil, 10, false))

	bySegment := tr.Report().GroupByBrokenSegment()
	if len(bySegment["b"]) != 2 {
		t.Errorf("GroupByBrokenSegment()[b] has %d records, want 2", len(bySegment["b"]))
	}

	byLine := tr.Report().GroupByLine()
	if len(byLine[10]) != 2 {
		t.Errorf("GroupByLine()[10] has %d records, want 2", len(byLine[10]))
	}
}

func TestReportToJSONIncludesSummaryAndRecords(t *testing.T) {
	tr := New()
	tr.Record(NewAccessRecord("a", Success, "", value.Int(1), 1, false))

	out, err := tr.Report().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(out, `"summary"`) || !strings.Contains(out, `"records"`) {
		t.Errorf("ToJSON output missing summary/records keys: %s", out)
	}
}
