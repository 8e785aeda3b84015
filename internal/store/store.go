package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"StockScope/internal/model"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Store is the schema store: a two-table SQLite database (stocks,
// stock_prices) populated once and read-only afterwards. The only write
// surface is the population upsert used during initialization.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// Safe to call repeatedly; migrations are idempotent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so charts/report tooling can read while population runs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] schema store opened: %s", path)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol       TEXT NOT NULL UNIQUE,
			company_name TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS stock_prices (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			stock_id INTEGER NOT NULL,
			date     TEXT NOT NULL,
			open     REAL NOT NULL,
			high     REAL NOT NULL,
			low      REAL NOT NULL,
			close    REAL NOT NULL,
			volume   INTEGER NOT NULL,
			FOREIGN KEY (stock_id) REFERENCES stocks (id)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_prices_stock_date ON stock_prices(stock_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_date ON stock_prices(date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertStock inserts the stock if absent, refreshes the company name if
// present, and returns the row id either way.
func (s *Store) UpsertStock(symbol, companyName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO stocks (symbol, company_name) VALUES (?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET company_name = excluded.company_name`,
		symbol, companyName,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert stock %s: %w", symbol, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM stocks WHERE symbol = ?`, symbol).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup stock %s: %w", symbol, err)
	}
	return id, nil
}

// UpsertBars inserts price bars for one stock, skipping (stock_id, date)
// pairs already present. Returns the number of rows actually inserted, so
// running population twice reports zero new rows the second time.
func (s *Store) UpsertBars(stockID int64, bars []model.PriceBar) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO stock_prices (stock_id, date, open, high, low, close, volume)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(stock_id, date) DO NOTHING`,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range bars {
		b := &bars[i]
		res, err := stmt.Exec(stockID, b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert bar %s: %w", b.Date.Format(dateLayout), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// Stocks returns every stock in the store, ordered by symbol.
func (s *Store) Stocks() ([]model.Stock, error) {
	rows, err := s.db.Query(`SELECT id, symbol, company_name FROM stocks ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	var stocks []model.Stock
	for rows.Next() {
		var st model.Stock
		if err := rows.Scan(&st.ID, &st.Symbol, &st.CompanyName); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, st)
	}
	return stocks, rows.Err()
}

// BarCount returns the total number of price bars in the store.
func (s *Store) BarCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stock_prices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bars: %w", err)
	}
	return n, nil
}

// Execute runs an arbitrary read-only SQL statement and returns the rows plus
// column names. Anything other than a single SELECT (or WITH ... SELECT)
// statement is rejected with a QueryError before it reaches the driver;
// driver failures (bad syntax, unknown columns) are wrapped the same way.
func (s *Store) Execute(ctx context.Context, sqlText string) (*model.QueryResult, error) {
	if err := checkReadOnly(sqlText); err != nil {
		return nil, &QueryError{Query: sqlText, Err: err}
	}

	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &QueryError{Query: sqlText, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Query: sqlText, Err: err}
	}

	result := &model.QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Query: sqlText, Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: sqlText, Err: err}
	}
	return result, nil
}

// checkReadOnly accepts a single SELECT statement (optionally prefixed by a
// WITH clause) and nothing else.
func checkReadOnly(sqlText string) error {
	trimmed := stripLeadingComments(sqlText)
	if trimmed == "" {
		return errors.New("empty statement")
	}

	verb, trailing := statementVerb(trimmed)
	if trailing {
		return errors.New("multiple statements are not allowed")
	}
	if verb != "SELECT" {
		if verb == "" {
			verb = firstWord(trimmed)
		}
		return fmt.Errorf("only read-only SELECT statements are allowed, got %s", verb)
	}
	return nil
}

// statementVerb scans the statement outside quoted literals and returns the
// top-level verb. A WITH clause does not decide the verb: SQLite lets a CTE
// list prefix INSERT/UPDATE/DELETE, so the scan looks past the CTE names and
// their parenthesized bodies to the keyword that actually runs. It also
// reports text after a statement-terminating semicolon, ignoring semicolons
// inside string literals.
func statementVerb(q string) (verb string, trailing bool) {
	depth := 0
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case c == '\'' || c == '"':
			quote := c
			i++
			for i < len(q) {
				if q[i] == quote {
					// Doubled quote is an escape, not a terminator.
					if i+1 < len(q) && q[i+1] == quote {
						i += 2
						continue
					}
					break
				}
				i++
			}
			i++
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth > 0 {
				depth--
			}
			i++
		case c == ';':
			if depth == 0 && strings.TrimSpace(q[i+1:]) != "" {
				trailing = true
			}
			i++
		case isWordByte(c):
			start := i
			for i < len(q) && isWordByte(q[i]) {
				i++
			}
			if depth != 0 || verb != "" {
				continue
			}
			switch strings.ToUpper(q[start:i]) {
			case "WITH", "RECURSIVE", "AS":
				// CTE scaffolding; keep scanning for the real verb.
			case "SELECT":
				verb = "SELECT"
			case "INSERT", "UPDATE", "DELETE", "REPLACE", "CREATE", "DROP",
				"ALTER", "PRAGMA", "ATTACH", "DETACH", "VACUUM", "VALUES":
				verb = strings.ToUpper(q[start:i])
			default:
				// CTE name or other identifier.
			}
		default:
			i++
		}
	}
	return verb, trailing
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func stripLeadingComments(q string) string {
	q = strings.TrimSpace(q)
	for {
		switch {
		case strings.HasPrefix(q, "--"):
			if i := strings.IndexByte(q, '\n'); i >= 0 {
				q = strings.TrimSpace(q[i+1:])
			} else {
				return ""
			}
		case strings.HasPrefix(q, "/*"):
			i := strings.Index(q, "*/")
			if i < 0 {
				return ""
			}
			q = strings.TrimSpace(q[i+2:])
		default:
			return q
		}
	}
}

func firstWord(q string) string {
	for i, r := range q {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' {
			return q[:i]
		}
	}
	return q
}

// DescribeSchema returns a human-readable description of the database
// structure (tables, columns, types) plus a per-symbol data summary, used as
// planning context for the analyst.
func (s *Store) DescribeSchema() (string, error) {
	var sb strings.Builder
	sb.WriteString("Tables:\n")

	tables, err := s.tableNames()
	if err != nil {
		return "", err
	}
	for _, table := range tables {
		sb.WriteString(fmt.Sprintf("\n%s:\n", table))
		rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
		if err != nil {
			return "", fmt.Errorf("table_info %s: %w", table, err)
		}
		for rows.Next() {
			var (
				cid     int
				name    string
				ctype   string
				notNull int
				dflt    sql.NullString
				pk      int
			)
			if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
				rows.Close()
				return "", fmt.Errorf("scan table_info: %w", err)
			}
			sb.WriteString(fmt.Sprintf("  %13s  %s\n", name, ctype))
		}
		rows.Close()
	}

	sb.WriteString("\nAvailable data:\n")
	rows, err := s.db.Query(
		`SELECT s.symbol, s.company_name, COUNT(p.id), COALESCE(MIN(p.date), ''), COALESCE(MAX(p.date), '')
		 FROM stocks s LEFT JOIN stock_prices p ON p.stock_id = s.id
		 GROUP BY s.id ORDER BY s.symbol`,
	)
	if err != nil {
		return "", fmt.Errorf("data summary: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var symbol, name, minDate, maxDate string
		var count int64
		if err := rows.Scan(&symbol, &name, &count, &minDate, &maxDate); err != nil {
			return "", fmt.Errorf("scan summary: %w", err)
		}
		if count == 0 {
			sb.WriteString(fmt.Sprintf("  %s (%s): no price data\n", symbol, name))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s (%s): %d daily bars from %s to %s\n", symbol, name, count, minDate, maxDate))
	}
	return sb.String(), rows.Err()
}

func (s *Store) tableNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing schema store")
	return s.db.Close()
}
