package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timahq/socialdata/internal/report"
)

func TestWriteRowsCSVKeepsLargeCountersVerbatim(t *testing.T) {
	origFormat, origOutput := format, output
	t.Cleanup(func() { format, output = origFormat, origOutput })

	format = "csv"
	output = filepath.Join(t.TempDir(), "profiles.csv")

	rows := []report.ProfileRow{{
		Username:   "@acme",
		Followers:  12345678,
		TotalLikes: 10000000,
		LikesRate:  "0.1%",
	}}
	if err := writeRows(rows, report.ProfileColumns); err != nil {
		t.Fatalf("writeRows() error: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if strings.Contains(string(raw), "e+") {
		t.Errorf("counters rendered in scientific notation:\n%s", raw)
	}

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv has %d records, want header + 1 row", len(records))
	}

	col := func(name string) string {
		for i, c := range records[0] {
			if c == name {
				return records[1][i]
			}
		}
		t.Fatalf("column %q missing from header", name)
		return ""
	}
	if got := col("Followers"); got != "12345678" {
		t.Errorf("Followers = %q, want 12345678", got)
	}
	if got := col("Total Likes"); got != "10000000" {
		t.Errorf("Total Likes = %q, want 10000000", got)
	}
}

func TestWriteRowsRejectsUnknownFormat(t *testing.T) {
	origFormat := format
	t.Cleanup(func() { format = origFormat })

	format = "xml"
	if err := writeRows([]report.ProfileRow{}, report.ProfileColumns); err == nil {
		t.Error("writeRows() accepted unsupported format")
	}
}
