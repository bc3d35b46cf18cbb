package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/stringutil"
	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// SQLiteProvider loads catalogs from a local SQLite database.
type SQLiteProvider struct {
	conn *sql.DB
	path string
}

// NewSQLiteProvider opens (and if necessary creates) the catalog database.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	// WAL mode and busy timeout for concurrent reads during host refresh.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &SQLiteProvider{conn: conn, path: dbPath}
	if err := p.initSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return p, nil
}

// Close closes the database connection.
func (p *SQLiteProvider) Close() error {
	return p.conn.Close()
}

// Ping verifies the database connection.
func (p *SQLiteProvider) Ping(ctx context.Context) error {
	return p.conn.PingContext(ctx)
}

func (p *SQLiteProvider) initSchema() error {
	if _, err := p.conn.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SeedDefaults populates empty tables with the embedded campus data.
// Existing rows are never touched; a host-managed database wins.
func (p *SQLiteProvider) SeedDefaults(ctx context.Context) error {
	var locationCount int
	if err := p.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&locationCount); err != nil {
		return fmt.Errorf("count locations: %w", err)
	}
	if locationCount > 0 {
		return nil
	}

	tx, err := p.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, loc := range DefaultLocations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO locations (uid, name, aliases, tags, latitude, longitude, address) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			loc.UID, loc.Name, joinList(loc.AliasList), joinList(loc.Tags), loc.Latitude, loc.Longitude, loc.Address,
		); err != nil {
			return fmt.Errorf("seed location %q: %w", loc.UID, err)
		}
	}
	for _, hb := range DefaultHandbooks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO handbooks (uid, major, aliases, file_name) VALUES (?, ?, ?, ?)`,
			hb.UID, hb.Major, joinList(hb.AliasList), hb.FileName,
		); err != nil {
			return fmt.Errorf("seed handbook %q: %w", hb.UID, err)
		}
	}
	for _, faq := range DefaultFAQ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO faq_responses (question, answer) VALUES (?, ?)`,
			faq.Question, faq.Answer,
		); err != nil {
			return fmt.Errorf("seed faq %q: %w", faq.Question, err)
		}
	}
	if err := seedHours(ctx, tx, "locker_hours", "basement", DefaultLockerHours); err != nil {
		return err
	}
	if err := seedHours(ctx, tx, "servery_hours", "meal_type", DefaultServeryHours); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func seedHours(ctx context.Context, tx *sql.Tx, table, sectionCol string, hours HourTable) error {
	for college, days := range hours {
		for day, sections := range days {
			for section, timeRange := range sections {
				query := fmt.Sprintf(
					`INSERT INTO %s (college, day, %s, hours) VALUES (?, ?, ?, ?)`, table, sectionCol)
				if _, err := tx.ExecContext(ctx, query, college, day, section, timeRange); err != nil {
					return fmt.Errorf("seed %s %s/%s/%s: %w", table, college, day, section, err)
				}
			}
		}
	}
	return nil
}

// LoadLocations reads the campus map.
func (p *SQLiteProvider) LoadLocations(ctx context.Context) ([]Location, error) {
	rows, err := p.conn.QueryContext(ctx,
		`SELECT uid, name, aliases, tags, latitude, longitude, address FROM locations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var locations []Location
	for rows.Next() {
		var loc Location
		var aliases, tags, address sql.NullString
		if err := rows.Scan(&loc.UID, &loc.Name, &aliases, &tags, &loc.Latitude, &loc.Longitude, &address); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		loc.AliasList = stringutil.SplitList(aliases.String)
		loc.Tags = stringutil.SplitList(tags.String)
		loc.Address = address.String
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// LoadHandbooks reads the handbook index.
func (p *SQLiteProvider) LoadHandbooks(ctx context.Context) ([]Handbook, error) {
	rows, err := p.conn.QueryContext(ctx,
		`SELECT uid, major, aliases, file_name FROM handbooks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query handbooks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var handbooks []Handbook
	for rows.Next() {
		var hb Handbook
		var aliases sql.NullString
		if err := rows.Scan(&hb.UID, &hb.Major, &aliases, &hb.FileName); err != nil {
			return nil, fmt.Errorf("scan handbook: %w", err)
		}
		hb.AliasList = stringutil.SplitList(aliases.String)
		handbooks = append(handbooks, hb)
	}
	return handbooks, rows.Err()
}

// LoadFAQ reads the curated question/answer pairs.
func (p *SQLiteProvider) LoadFAQ(ctx context.Context) ([]FAQEntry, error) {
	rows, err := p.conn.QueryContext(ctx,
		`SELECT question, answer FROM faq_responses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query faq: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var faqs []FAQEntry
	for rows.Next() {
		var f FAQEntry
		if err := rows.Scan(&f.Question, &f.Answer); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// LoadLockerHours reads the locker hour table.
func (p *SQLiteProvider) LoadLockerHours(ctx context.Context) (HourTable, error) {
	return p.loadHours(ctx, `SELECT college, day, basement, hours FROM locker_hours`)
}

// LoadServeryHours reads the servery hour table.
func (p *SQLiteProvider) LoadServeryHours(ctx context.Context) (HourTable, error) {
	return p.loadHours(ctx, `SELECT college, day, meal_type, hours FROM servery_hours`)
}

func (p *SQLiteProvider) loadHours(ctx context.Context, query string) (HourTable, error) {
	rows, err := p.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query hours: %w", err)
	}
	defer func() { _ = rows.Close() }()

	table := make(HourTable)
	for rows.Next() {
		var college, day, section, timeRange string
		if err := rows.Scan(&college, &day, &section, &timeRange); err != nil {
			return nil, fmt.Errorf("scan hours: %w", err)
		}
		if table[college] == nil {
			table[college] = make(map[string]map[string]string)
		}
		if table[college][day] == nil {
			table[college][day] = make(map[string]string)
		}
		table[college][day][section] = timeRange
	}
	return table, rows.Err()
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
