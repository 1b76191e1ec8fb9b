package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"psikotes/internal"
	"psikotes/internal/config"
	"psikotes/internal/storage"
)

func TestSmokeCSVImport(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	text := strings.Join([]string{
		"Laporan Peserta Psikotes",
		"PT Contoh Sejahtera",
		"Periode: Agustus 2026",
		"Dicetak: 01/08/2026",
		"NIK,Nama Lengkap,Email,Jenis Kelamin,No HP,Tanggal Lahir,Agama,Pendidikan Terakhir",
		"3174012345678901,Budi Santoso,budi@example.com,L,081234567890,17/08/1990,Islam,S1",
		"3174012345678901,Andi Wijaya,andi@example.com,L,081234567892,01/01/1991,Kristen,SMA",
		"3174012345678903,Siti Aminah,siti@example.com,P,6281234567893,05/05/1992,Islam,D3",
	}, "\n")

	inputPath := filepath.Join(tmp, "roster.csv")
	if err := os.WriteFile(inputPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.Load()
	cfg.DBPath = filepath.Join(tmp, "app.db")
	svc := NewImportService(db, cfg)

	res, err := svc.Run(inputPath, "csv", false)
	if err != nil {
		t.Fatal(err)
	}

	if res.Parse.HeaderRow != 5 || res.Parse.DataStartRow != 6 {
		t.Fatalf("headerRow=%d dataStartRow=%d", res.Parse.HeaderRow, res.Parse.DataStartRow)
	}
	if res.Mapping.Confidence != 1.0 {
		t.Fatalf("confidence=%v", res.Mapping.Confidence)
	}
	if res.Summary.ValidRows != 2 || res.Summary.InvalidRows != 1 || res.Summary.DuplicateNiks != 1 {
		t.Fatalf("summary=%+v", res.Summary)
	}
	dup := res.Summary.Results[1]
	if dup.Status != internal.RowError || dup.Code == nil || *dup.Code != internal.CodeDuplicateNIK {
		t.Fatalf("dup=%+v", dup)
	}
	if res.Persisted != 2 {
		t.Fatalf("persisted=%d", res.Persisted)
	}

	run, err := db.GetImport(res.ImportID)
	if err != nil {
		t.Fatal(err)
	}
	if run == nil || run.ValidRows != 2 || run.DuplicateNiks != 1 {
		t.Fatalf("run=%+v", run)
	}

	participants, err := db.ListParticipants(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(participants) != 2 {
		t.Fatalf("participants=%d", len(participants))
	}

	errRows, err := db.GetErrorRows(res.ImportID)
	if err != nil {
		t.Fatal(err)
	}
	if len(errRows) != 1 || errRows[0].RowNumber != 2 {
		t.Fatalf("errRows=%+v", errRows)
	}

	out := filepath.Join(tmp, "errors.xlsx")
	if err := ExportErrorReport(errRows, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestSmokeDryRunPersistsNothing(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	text := "NIK,Nama Lengkap,Email,Jenis Kelamin,No HP\n" +
		"3174012345678901,Budi Santoso,budi@example.com,L,081234567890\n"
	inputPath := filepath.Join(tmp, "roster.csv")
	if err := os.WriteFile(inputPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.Load()
	svc := NewImportService(db, cfg)
	res, err := svc.Run(inputPath, "csv", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary.ValidRows != 1 || res.Persisted != 0 {
		t.Fatalf("res=%+v", res)
	}

	runs, err := db.ListImports(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("runs=%d", len(runs))
	}
	participants, err := db.ListParticipants(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(participants) != 0 {
		t.Fatalf("participants=%d", len(participants))
	}
}
