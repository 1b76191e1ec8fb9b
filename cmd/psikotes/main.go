package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"psikotes/internal/config"
	"psikotes/internal/pipeline"
	"psikotes/internal/storage"
	"psikotes/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "import:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		inType := fs.String("type", "csv", "csv|xlsx|html")
		dryRun := fs.Bool("dry-run", false, "validate only, persist nothing")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		svc := pipeline.NewImportService(db, cfg)
		res, err := svc.Run(*input, *inType, *dryRun)
		must(err)

		if res.Mapping.Confidence < cfg.MinMappingConfidence {
			fmt.Printf("warning: column mapping confidence %.2f, missing required: %s\n",
				res.Mapping.Confidence, strings.Join(res.Mapping.MissingRequired, ", "))
		}
		mode := "imported"
		if res.DryRun {
			mode = "dry-run"
		}
		fmt.Printf("%s id=%s header=%d dataStart=%d rows=%d valid=%d invalid=%d dupNik=%d dupEmail=%d stored=%d\n",
			mode, res.ImportID, res.Parse.HeaderRow, res.Parse.DataStartRow, res.Parse.TotalRows,
			res.Summary.ValidRows, res.Summary.InvalidRows, res.Summary.DuplicateNiks, res.Summary.DuplicateEmails, res.Persisted)
		for _, o := range res.Summary.Results {
			if o.Status != "error" {
				continue
			}
			code := ""
			if o.Code != nil {
				code = string(*o.Code)
			}
			fmt.Printf("  row %d: [%s] %s\n", o.RowNumber, code, util.DerefString(o.Message))
		}
	case "import:errors":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		importID := fs.String("importId", "", "import run id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*importID) == "" {
			must(fmt.Errorf("--importId is required"))
		}
		run, err := db.GetImport(*importID)
		must(err)
		if run == nil {
			must(fmt.Errorf("import not found: %s", *importID))
		}
		rows, err := db.GetErrorRows(*importID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no error rows for importId=%s", *importID))
		}
		path := util.FirstNonEmpty(*out, filepath.Join(cfg.OutputDir, fmt.Sprintf("import-errors-%s.xlsx", *importID)))
		must(pipeline.ExportErrorReport(rows, path))
		fmt.Printf("exported %d error rows to %s\n", len(rows), path)
	case "import:list":
		runs, err := db.ListImports(20)
		must(err)
		for _, run := range runs {
			fmt.Printf("%s %s type=%s conf=%.2f rows=%d valid=%d invalid=%d at=%s\n",
				run.ID, run.Source, run.InputType, run.Confidence, run.TotalRows, run.ValidRows, run.InvalidRows, run.CreatedAt)
		}
	case "participants:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 50, "max participants")
		_ = fs.Parse(os.Args[2:])
		participants, err := db.ListParticipants(*limit)
		must(err)
		for _, p := range participants {
			fmt.Printf("%s %s <%s> gender=%s phone=%s\n", p.NIK, p.Name, p.Email, p.Gender, util.DerefString(p.Phone))
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: psikotes <command>")
	fmt.Println("commands:")
	fmt.Println("  import:run --input=roster.csv --type=csv|xlsx|html [--dry-run]")
	fmt.Println("  import:errors --importId=... [--out=./out/errors.xlsx]")
	fmt.Println("  import:list")
	fmt.Println("  participants:list [--limit=50]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
