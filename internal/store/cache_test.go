package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ridewrap/internal/model"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "reports.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleReport() model.Report {
	trips := model.EmptyTripSummary()
	trips.TotalTrips = 3
	trips.TotalSpent = "42.10"
	return model.Report{
		Profile: model.Profile{MemberSince: "March 4, 2015", AvgRating: "4.87"},
		Years: model.Years{
			{Label: model.LifetimeLabel, Summary: model.YearSummary{Trips: trips, Eats: model.EmptyEatsSummary()}},
			{Label: "2023", Summary: model.YearSummary{Trips: trips, Eats: model.EmptyEatsSummary()}},
		},
	}
}

func TestGetReport_NotFound(t *testing.T) {
	c := openTemp(t)
	_, _, err := c.GetReport("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveAndGetReport(t *testing.T) {
	c := openTemp(t)

	files := []FileInfo{
		{Path: "/export/trips_data.csv", Kind: "trips", MtimeNs: 1, SizeBytes: 100},
		{Path: "/export/eats_order_details.csv", Kind: "orders", MtimeNs: 2, SizeBytes: 200},
	}
	saved, err := c.SaveReport(Run{Fingerprint: "fp1", DataDir: "/export", Files: 2, ParseErrors: 1}, files, sampleReport())
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveReport should assign a run ID")
	}

	report, run, err := c.GetReport("fp1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if run.ID != saved.ID {
		t.Errorf("run ID = %q, want %q", run.ID, saved.ID)
	}
	if run.ParseErrors != 1 || run.Files != 2 {
		t.Errorf("run counters = files %d parse errors %d", run.Files, run.ParseErrors)
	}
	if got := report.Labels(); len(got) != 2 || got[0] != model.LifetimeLabel || got[1] != "2023" {
		t.Errorf("labels = %v", got)
	}
	if report.Years[0].Summary.Trips.TotalSpent != "42.10" {
		t.Errorf("TotalSpent = %q", report.Years[0].Summary.Trips.TotalSpent)
	}

	tracked, err := c.RunFiles(saved.ID)
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(tracked) != 2 {
		t.Errorf("tracked files = %d, want 2", len(tracked))
	}
}

func TestSaveReport_ReplacesSameFingerprint(t *testing.T) {
	c := openTemp(t)

	first, err := c.SaveReport(Run{Fingerprint: "fp", DataDir: "/a"}, nil, sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.SaveReport(Run{Fingerprint: "fp", DataDir: "/a"}, nil, sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatal("each save should get a fresh run ID")
	}

	n, err := c.RunCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("RunCount = %d, want 1", n)
	}

	runs, err := c.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != second.ID {
		t.Errorf("ListRuns = %+v, want only the second run", runs)
	}
}

func TestClear(t *testing.T) {
	c := openTemp(t)
	if _, err := c.SaveReport(Run{Fingerprint: "a", DataDir: "/x"}, []FileInfo{{Path: "/x/trips_data.csv", Kind: "trips"}}, sampleReport()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SaveReport(Run{Fingerprint: "b", DataDir: "/y"}, nil, sampleReport()); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := c.RunCount()
	if n != 0 {
		t.Errorf("RunCount after Clear = %d, want 0", n)
	}
}
