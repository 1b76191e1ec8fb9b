package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"psikotes/internal"
	"psikotes/internal/config"
	"psikotes/internal/storage"
)

type ImportService struct {
	db  *storage.DB
	cfg config.Config
}

func NewImportService(db *storage.DB, cfg config.Config) *ImportService {
	return &ImportService{db: db, cfg: cfg}
}

type ImportResult struct {
	ImportID  string
	Parse     internal.ParseResult
	Mapping   internal.ColumnMapping
	Summary   internal.BatchSummary
	Persisted int
	DryRun    bool
}

// Run drives one import end to end: parse, map columns, normalize, validate,
// and (unless dry-run) persist valid participants plus the per-row outcomes.
// Per-row failures never abort the batch; only structural failures do.
func (s *ImportService) Run(inputPath, inputType string, dryRun bool) (ImportResult, error) {
	blob, err := os.ReadFile(inputPath)
	if err != nil {
		return ImportResult{}, err
	}

	var parsed internal.ParseResult
	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "csv":
		parsed, err = ParseCSV(string(blob), s.cfg.HeaderScanLines)
	case "xlsx":
		parsed, err = ParseXLSX(blob, s.cfg.HeaderScanLines)
	case "html":
		parsed, err = ParseHTMLTable(string(blob), s.cfg.HeaderScanLines)
	default:
		return ImportResult{}, fmt.Errorf("unsupported input type: %s", inputType)
	}
	if err != nil {
		return ImportResult{}, err
	}
	if s.cfg.ImportRowLimit > 0 && len(parsed.Records) > s.cfg.ImportRowLimit {
		return ImportResult{}, fmt.Errorf("import holds %d rows, limit is %d", len(parsed.Records), s.cfg.ImportRowLimit)
	}

	mapping := MapColumns(parsed.Headers)
	users := BuildUsers(parsed.Records, mapping)
	summary, valid := ValidateBatch(users)

	result := ImportResult{
		ImportID: uuid.NewString(),
		Parse:    parsed,
		Mapping:  mapping,
		Summary:  summary,
		DryRun:   dryRun,
	}
	if dryRun {
		return result, nil
	}

	run := internal.ImportRun{
		ID:              result.ImportID,
		Source:          inputPath,
		InputType:       strings.ToLower(strings.TrimSpace(inputType)),
		Confidence:      mapping.Confidence,
		TotalRows:       parsed.TotalRows,
		ValidRows:       summary.ValidRows,
		InvalidRows:     summary.InvalidRows,
		DuplicateNiks:   summary.DuplicateNiks,
		DuplicateEmails: summary.DuplicateEmails,
	}
	if err := s.db.InsertImport(run); err != nil {
		return ImportResult{}, err
	}
	if err := s.db.InsertImportRows(run.ID, summary.Results); err != nil {
		return ImportResult{}, err
	}
	stored, err := s.db.UpsertParticipants(run.ID, valid)
	if err != nil {
		return ImportResult{}, err
	}
	result.Persisted = stored

	return result, nil
}
