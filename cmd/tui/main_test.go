package main

import (
	"strings"
	"testing"

	"orfscan/internal/orf"
)

func sampleRecords() []orf.Record {
	return []orf.Record{
		{Strand: orf.Forward, Frame: 1, StartPos: 178, StopPos: 210, Protein: "MEVRLLRDGL*", Nucleotides: strings.Repeat("ATG", 11)},
		{Strand: orf.Reverse, Frame: 3, StartPos: 384, StopPos: 223, Protein: "MAQ", Nucleotides: "ATGGCCCAA"},
	}
}

func TestCycleMode(t *testing.T) {
	m := initialModel(sampleRecords())
	if m.currentMode != modeProtein {
		t.Fatalf("expected initial mode protein, got %v", m.currentMode)
	}
	m = m.cycleMode()
	if m.currentMode != modeNucleotides {
		t.Fatalf("expected nucleotides, got %v", m.currentMode)
	}
	m = m.cycleMode()
	if m.currentMode != modeSummary {
		t.Fatalf("expected summary, got %v", m.currentMode)
	}
	m = m.cycleMode()
	if m.currentMode != modeProtein {
		t.Fatalf("expected protein, got %v", m.currentMode)
	}
}

func TestListItemRendering(t *testing.T) {
	it := listItem{record: sampleRecords()[1]}
	if it.Title() != "384..223" {
		t.Fatalf("unexpected title %q", it.Title())
	}
	if !strings.Contains(it.Description(), "Frame: 3") {
		t.Fatalf("unexpected description %q", it.Description())
	}
	if !strings.Contains(it.FilterValue(), "MAQ") {
		t.Fatalf("filter value should include protein, got %q", it.FilterValue())
	}
}

func TestRenderRightPanelEmpty(t *testing.T) {
	m := initialModel(nil)
	m.width = 120
	m.height = 40
	if !strings.Contains(m.renderRightPanel(), "No ORFs found") {
		t.Fatal("expected empty-state panel")
	}
}

func TestFormatSummaryTermination(t *testing.T) {
	m := initialModel(sampleRecords())
	m.width = 120
	m.height = 40
	withStop := m.formatSummary(sampleRecords()[0])
	if !strings.Contains(withStop, "stop codon") {
		t.Fatalf("expected stop codon termination, got:\n%s", withStop)
	}
	runEnd := m.formatSummary(sampleRecords()[1])
	if !strings.Contains(runEnd, "runs to sequence end") {
		t.Fatalf("expected run-to-end termination, got:\n%s", runEnd)
	}
}
