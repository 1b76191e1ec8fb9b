package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"psikotes/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS participants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nik TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  gender TEXT NOT NULL,
  phone TEXT,
  birthPlace TEXT,
  birthDate TEXT,
  religion TEXT,
  education TEXT,
  address TEXT,
  importId TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_participants_email ON participants(email);
CREATE INDEX IF NOT EXISTS idx_participants_importId ON participants(importId);

CREATE TABLE IF NOT EXISTS imports (
  id TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  inputType TEXT NOT NULL,
  confidence REAL NOT NULL,
  totalRows INTEGER NOT NULL,
  validRows INTEGER NOT NULL,
  invalidRows INTEGER NOT NULL,
  duplicateNiks INTEGER NOT NULL,
  duplicateEmails INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS import_rows (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  importId TEXT NOT NULL,
  rowNumber INTEGER NOT NULL,
  nik TEXT,
  name TEXT,
  email TEXT,
  status TEXT NOT NULL,
  field TEXT,
  code TEXT,
  message TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(importId) REFERENCES imports(id)
);
CREATE INDEX IF NOT EXISTS idx_import_rows_importId ON import_rows(importId);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertImport(run internal.ImportRun) error {
	_, err := d.conn.Exec(`
INSERT INTO imports (id, source, inputType, confidence, totalRows, validRows, invalidRows, duplicateNiks, duplicateEmails)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.Source, run.InputType, run.Confidence, run.TotalRows, run.ValidRows, run.InvalidRows, run.DuplicateNiks, run.DuplicateEmails)
	return err
}

func (d *DB) GetImport(id string) (*internal.ImportRun, error) {
	var run internal.ImportRun
	err := d.conn.QueryRow(`
SELECT id, source, inputType, confidence, totalRows, validRows, invalidRows, duplicateNiks, duplicateEmails, createdAt
FROM imports WHERE id = ?
`, id).Scan(
		&run.ID, &run.Source, &run.InputType, &run.Confidence, &run.TotalRows, &run.ValidRows, &run.InvalidRows, &run.DuplicateNiks, &run.DuplicateEmails, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (d *DB) ListImports(limit int) ([]internal.ImportRun, error) {
	rows, err := d.conn.Query(`
SELECT id, source, inputType, confidence, totalRows, validRows, invalidRows, duplicateNiks, duplicateEmails, createdAt
FROM imports ORDER BY createdAt DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ImportRun
	for rows.Next() {
		var run internal.ImportRun
		if err := rows.Scan(&run.ID, &run.Source, &run.InputType, &run.Confidence, &run.TotalRows, &run.ValidRows, &run.InvalidRows, &run.DuplicateNiks, &run.DuplicateEmails, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) InsertImportRows(importID string, outcomes []internal.RowOutcome) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO import_rows (importId, rowNumber, nik, name, email, status, field, code, message)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range outcomes {
		var code *string
		if o.Code != nil {
			c := string(*o.Code)
			code = &c
		}
		if _, err := stmt.Exec(importID, o.RowNumber, o.NIK, o.Name, o.Email, string(o.Status), o.Field, code, o.Message); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) GetErrorRows(importID string) ([]internal.RowOutcome, error) {
	rows, err := d.conn.Query(`
SELECT rowNumber, nik, name, email, status, field, code, message
FROM import_rows WHERE importId = ? AND status = 'error' ORDER BY rowNumber ASC
`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RowOutcome
	for rows.Next() {
		var o internal.RowOutcome
		var status string
		var code *string
		if err := rows.Scan(&o.RowNumber, &o.NIK, &o.Name, &o.Email, &status, &o.Field, &code, &o.Message); err != nil {
			return nil, err
		}
		o.Status = internal.RowStatus(status)
		if code != nil {
			c := internal.ErrorCode(*code)
			o.Code = &c
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (d *DB) UpsertParticipants(importID string, users []internal.NormalizedUser) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO participants (nik, name, email, gender, phone, birthPlace, birthDate, religion, education, address, importId)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(nik) DO UPDATE SET
  name=excluded.name,
  email=excluded.email,
  gender=excluded.gender,
  phone=excluded.phone,
  birthPlace=excluded.birthPlace,
  birthDate=excluded.birthDate,
  religion=excluded.religion,
  education=excluded.education,
  address=excluded.address,
  importId=excluded.importId,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	stored := 0
	for _, u := range users {
		var phone *string
		if u.Phone != "" {
			p := u.Phone
			phone = &p
		}
		var religion, education *string
		if u.Religion != nil {
			r := string(*u.Religion)
			religion = &r
		}
		if u.Education != nil {
			e := string(*u.Education)
			education = &e
		}
		if _, err := stmt.Exec(u.NIK, u.Name, u.Email, string(u.Gender), phone, u.BirthPlace, u.BirthDate, religion, education, u.Address, importID); err != nil {
			return stored, err
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return stored, nil
}

func (d *DB) ListParticipants(limit int) ([]internal.Participant, error) {
	rows, err := d.conn.Query(`
SELECT id, nik, name, email, gender, phone, birthPlace, birthDate, religion, education, address, importId, createdAt, updatedAt
FROM participants ORDER BY name ASC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Participant
	for rows.Next() {
		var p internal.Participant
		if err := rows.Scan(&p.ID, &p.NIK, &p.Name, &p.Email, &p.Gender, &p.Phone, &p.BirthPlace, &p.BirthDate, &p.Religion, &p.Education, &p.Address, &p.ImportID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
