package engagement

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for engagement features.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if necessary) the engagement database.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create engagement db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open engagement db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS subscribers (
			email TEXT PRIMARY KEY,
			subscribed_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_slug TEXT NOT NULL,
			author TEXT NOT NULL,
			body TEXT NOT NULL,
			visitor_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS likes (
			post_slug TEXT NOT NULL,
			visitor_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (post_slug, visitor_hash)
		);

		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_slug TEXT NOT NULL,
			reason TEXT NOT NULL,
			detail TEXT,
			visitor_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_slug);
		CREATE INDEX IF NOT EXISTS idx_reports_post ON reports(post_slug);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not
// found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Subscribe records a newsletter signup. Re-subscribing the same address is
// a no-op, not an error.
func (s *Store) Subscribe(email string) error {
	_, err := s.db.Exec(
		`INSERT INTO subscribers (email, subscribed_at) VALUES (?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		email, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", email, err)
	}
	return nil
}

// AddComment stores a comment and returns it with its assigned id.
func (s *Store) AddComment(c Comment, visitorHash string) (Comment, error) {
	c.CreatedAt = time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO comments (post_slug, author, body, visitor_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.PostSlug, c.Author, c.Body, visitorHash, c.CreatedAt)
	if err != nil {
		return Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

// ListComments returns the comments for a post, oldest first.
func (s *Store) ListComments(postSlug string) ([]Comment, error) {
	rows, err := s.db.Query(
		`SELECT id, post_slug, author, body, created_at FROM comments
		 WHERE post_slug = ? ORDER BY created_at ASC`, postSlug)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostSlug, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Like records a like for a post. One like per visitor hash; repeats are
// no-ops. Returns the post's like count after the operation.
func (s *Store) Like(postSlug, visitorHash string) (int, error) {
	_, err := s.db.Exec(
		`INSERT INTO likes (post_slug, visitor_hash, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(post_slug, visitor_hash) DO NOTHING`,
		postSlug, visitorHash, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert like: %w", err)
	}
	return s.LikeCount(postSlug)
}

// LikeCount returns the number of likes a post has.
func (s *Store) LikeCount(postSlug string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE post_slug = ?`, postSlug).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

// SaveReport stores a content report. Store is the default ReportSink.
func (s *Store) SaveReport(r Report) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO reports (post_slug, reason, detail, visitor_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.PostSlug, r.Reason, r.Detail, r.VisitorHash, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

var _ ReportSink = (*Store)(nil)
