package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheetnorm/internal/fileio"
	"sheetnorm/internal/storage"
)

func TestProcessFileSmoke(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	input := filepath.Join(tmp, "parts.csv")
	csv := "part no,Vds Max (V),vendor\nLM317,40,TI\nAD823,60,ADI\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	svc, err := NewProcessingService(db, cfg, defaultSchema(t))
	if err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(tmp, "out")
	res, err := svc.ProcessFile(input, "", outDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Result.Report.MappedCount != 3 {
		t.Fatalf("mapped = %d", res.Result.Report.MappedCount)
	}

	saved, err := fileio.ReadTable(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Part Number", "VDS Max (V)", "Manufacturer"}
	for i, h := range want {
		if saved.Headers[i] != h {
			t.Fatalf("saved headers = %v, want %v", saved.Headers, want)
		}
	}
	if saved.RowCount() != 2 {
		t.Fatalf("saved rows = %d", saved.RowCount())
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != "finalized" || runs[0].MappedCount != 3 {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestProcessFolderContinuesOnError(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	inDir := filepath.Join(tmp, "in")
	if err := os.MkdirAll(inDir, 0o755); err != nil {
		t.Fatal(err)
	}
	good := "part no,vendor\nLM317,TI\n"
	if err := os.WriteFile(filepath.Join(inDir, "good.csv"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	// Fails every parse attempt: not a zip, invalid utf-8 and an
	// unterminated csv quote.
	if err := os.WriteFile(filepath.Join(inDir, "broken.xlsx"), []byte("\xff\"broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := NewProcessingService(db, testConfig(), defaultSchema(t))
	if err != nil {
		t.Fatal(err)
	}

	done, failed, err := svc.ProcessFolder(inDir, filepath.Join(tmp, "out"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 1 || !strings.HasSuffix(done[0].File, "good.csv") {
		t.Fatalf("done = %+v", done)
	}
	if len(failed) != 1 || failed[0].File != "broken.xlsx" {
		t.Fatalf("failed = %+v", failed)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected both runs recorded, got %d", len(runs))
	}
}
