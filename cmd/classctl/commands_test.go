package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureCSV = "filename,predicted_subject,relevant_text_segment,top_score,second_score,confidence_pct,matched_keywords_summary,explanation\n" +
	"p1.pdf,Contractual,Revisión del contrato,0.9,0.2,72,contrato,\n" +
	"p2.pdf,Civil,Responsabilidad civil,0.5,0.4,45,,\n" +
	"p3.pdf,Contractual,Contrato de arriendo,0.95,0.1,90,contrato,\n"

func newFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "classified_proyectos_scored.csv"), []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("classctl %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestSubjectsCommand(t *testing.T) {
	dir := newFixtureDir(t)
	got := run(t, "subjects", "--data-dir", dir, "--variant", "explained")
	if got != "Civil\nContractual\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestListCommand(t *testing.T) {
	dir := newFixtureDir(t)
	got := run(t, "list", "--data-dir", dir, "--variant", "explained", "--min-confidence", "70")
	want := "Mostrando 2 de 3 proyectos.\np1.pdf — Contractual (72%)\np3.pdf — Contractual (90%)\n"
	if got != want {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestStatsCommand(t *testing.T) {
	dir := newFixtureDir(t)
	got := run(t, "stats", "--data-dir", dir, "--variant", "explained")
	for _, want := range []string{"Contractual", "Total de proyectos", "Muy alta (86-100%)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("stats output missing %q:\n%s", want, got)
		}
	}
}

func TestExportCommandWritesIntoDataDir(t *testing.T) {
	dir := newFixtureDir(t)
	run(t, "export", "--data-dir", dir, "--variant", "explained", "--subject", "Civil")

	data, err := os.ReadFile(filepath.Join(dir, "proyectos_filtrados.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\xef\xbb\xbf")) || !bytes.Contains(data, []byte("p2.pdf")) || bytes.Contains(data, []byte("p1.pdf")) {
		t.Fatalf("unexpected export %q", data)
	}
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"export", "--data-dir", newFixtureDir(t), "--format", "pdf"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
