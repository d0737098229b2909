package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/Bitlatte/areyou/internal/model"
	"github.com/Bitlatte/areyou/internal/page"
)

// SQLiteSource keeps a snapshot in a SQLite database.
type SQLiteSource struct {
	conn   *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at dsn and makes sure the
// schema exists.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLiteSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer, and ":memory:" is per connection.
	conn.SetMaxOpenConns(1)

	s := &SQLiteSource{conn: conn, logger: logger}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteSource) Close() error {
	return s.conn.Close()
}

func (s *SQLiteSource) migrate() error {
	migrations := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS history_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS photos (
			record_id INTEGER NOT NULL REFERENCES history_records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			thumbnail TEXT NOT NULL DEFAULT '{}',
			full_size TEXT NOT NULL DEFAULT '{}',
			PRIMARY KEY (record_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS people (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_records_year ON history_records(year)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteSource) Load(ctx context.Context) (*page.Snapshot, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.loadPeople(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := &page.Snapshot{Records: records, People: people}
	Sort(snapshot)
	s.logger.Info("database loaded",
		"records", len(records),
		"photos", countPhotos(records),
		"people", len(people),
	)
	return snapshot, nil
}

func (s *SQLiteSource) loadRecords(ctx context.Context) ([]*model.HistoryRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, year, title, content, link FROM history_records ORDER BY year, id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []*model.HistoryRecord{}
	byID := map[int64]*model.HistoryRecord{}
	for rows.Next() {
		var (
			id      int64
			r       model.HistoryRecord
			content string
		)
		if err := rows.Scan(&id, &r.Year, &r.Title, &content, &r.Link); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Content = template.HTML(content)
		records = append(records, &r)
		byID[id] = &r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	photoRows, err := s.conn.QueryContext(ctx,
		`SELECT record_id, id, title, description, thumbnail, full_size FROM photos ORDER BY record_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var (
			recordID        int64
			p               model.Photo
			thumb, fullSize string
		)
		if err := photoRows.Scan(&recordID, &p.ID, &p.Title, &p.Description, &thumb, &fullSize); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		if err := json.Unmarshal([]byte(thumb), &p.Thumbnail); err != nil {
			return nil, fmt.Errorf("decode thumbnail of photo %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(fullSize), &p.FullSize); err != nil {
			return nil, fmt.Errorf("decode full size of photo %s: %w", p.ID, err)
		}
		if r, ok := byID[recordID]; ok {
			r.Photos = append(r.Photos, &p)
		}
	}
	if err := photoRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return records, nil
}

func (s *SQLiteSource) loadPeople(ctx context.Context) ([]*model.Person, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT first_name, full_name, email, link, sort_order FROM people ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	people := []*model.Person{}
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.FirstName, &p.FullName, &p.Email, &p.Link, &p.Order); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

// Save replaces the stored data with snapshot in a single transaction.
func (s *SQLiteSource) Save(ctx context.Context, snapshot *page.Snapshot) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM photos`, `DELETE FROM history_records`, `DELETE FROM people`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}

	for _, r := range snapshot.Records {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO history_records (year, title, content, link) VALUES (?, ?, ?, ?)`,
			r.Year, r.Title, string(r.Content), r.Link)
		if err != nil {
			return fmt.Errorf("insert record %q: %w", r.Key(), err)
		}
		recordID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		for i, p := range r.Photos {
			if p == nil {
				continue
			}
			thumb, err := json.Marshal(p.Thumbnail)
			if err != nil {
				return fmt.Errorf("encode thumbnail of photo %s: %w", p.ID, err)
			}
			fullSize, err := json.Marshal(p.FullSize)
			if err != nil {
				return fmt.Errorf("encode full size of photo %s: %w", p.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO photos (record_id, position, id, title, description, thumbnail, full_size) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				recordID, i, p.ID, p.Title, p.Description, string(thumb), string(fullSize)); err != nil {
				return fmt.Errorf("insert photo %s: %w", p.ID, err)
			}
		}
	}

	for _, p := range snapshot.People {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO people (first_name, full_name, email, link, sort_order) VALUES (?, ?, ?, ?, ?)`,
			p.FirstName, p.FullName, p.Email, p.Link, p.Order); err != nil {
			return fmt.Errorf("insert person %q: %w", p.FirstName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("database saved", "records", len(snapshot.Records), "people", len(snapshot.People))
	return nil
}
