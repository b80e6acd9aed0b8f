package waypost

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wayfaremedia/waypost/sections"
)

// ErrNotFound is returned when a requested post or page does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for posts,
// landing pages, and uploaded image metadata. It is the concrete
// post-storage primitive behind the write path's PostStore interface.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy_timeout so writers wait
	// instead of failing with SQLITE_BUSY, synchronous=NORMAL is safe with
	// WAL, larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    format TEXT NOT NULL DEFAULT 'standard',
    categories TEXT NOT NULL DEFAULT ',,',
    body TEXT NOT NULL DEFAULT '',
    sections TEXT NOT NULL DEFAULT '[]',
    featured_image TEXT NOT NULL DEFAULT '',
    reading_time INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    sections TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL DEFAULT '',
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    size INTEGER NOT NULL DEFAULT 0,
    uploaded_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
CREATE INDEX IF NOT EXISTS idx_posts_updated ON posts(updated_at);
`)
	return err
}

const postColumns = `id, slug, title, status, format, categories, body, sections, featured_image, reading_time, created_at, updated_at`

func scanPost(scan func(...any) error) (Post, error) {
	var p Post
	var categories, secs string
	err := scan(&p.ID, &p.Slug, &p.Title, &p.Status, &p.Format, &categories,
		&p.Body, &secs, &p.FeaturedImage, &p.ReadingTime, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	p.Categories = parseCategories(categories)
	if err := json.Unmarshal([]byte(secs), &p.ContentSections); err != nil {
		return Post{}, fmt.Errorf("decode sections for %s: %w", p.Slug, err)
	}
	return p, nil
}

// Create inserts a new post and returns its generated identifier. Slug
// uniqueness is enforced by the schema; a duplicate surfaces as an error.
func (s *Store) Create(p Post) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	secs, err := encodeSections(p.ContentSections)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Status, postFormat(p.Format), categoryString(p.Categories),
		p.Body, secs, p.FeaturedImage, p.ReadingTime, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	return p.ID, nil
}

// Update overlays the incoming document onto the stored post. Fields the
// deep-clean collapsed to absence (zero values here) keep their stored
// value, matching the write path's partial-update semantics.
func (s *Store) Update(id string, p Post) error {
	existing, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if p.Slug != "" {
		existing.Slug = p.Slug
	}
	if p.Title != "" {
		existing.Title = p.Title
	}
	if p.Status != "" {
		existing.Status = p.Status
	}
	if p.Format != "" {
		existing.Format = postFormat(p.Format)
	}
	if len(p.Categories) > 0 {
		existing.Categories = p.Categories
	}
	if p.Body != "" {
		existing.Body = p.Body
	}
	if p.ContentSections != nil {
		existing.ContentSections = p.ContentSections
	}
	if p.FeaturedImage != "" {
		existing.FeaturedImage = p.FeaturedImage
	}
	if p.ReadingTime > 0 {
		existing.ReadingTime = p.ReadingTime
	}
	if p.UpdatedAt != "" {
		existing.UpdatedAt = p.UpdatedAt
	}

	secs, err := encodeSections(existing.ContentSections)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE posts SET slug = ?, title = ?, status = ?, format = ?, categories = ?,
		body = ?, sections = ?, featured_image = ?, reading_time = ?, updated_at = ? WHERE id = ?`,
		existing.Slug, existing.Title, existing.Status, existing.Format, categoryString(existing.Categories),
		existing.Body, secs, existing.FeaturedImage, existing.ReadingTime, existing.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND status = ?`, slug, StatusPublished)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of status (for editors).
func (s *Store) GetPostAny(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// GetPostByID returns a post by its identifier regardless of status.
func (s *Store) GetPostByID(id string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row.Scan)
}

// ListPosts returns published posts newest first. If category is non-empty,
// results are filtered to posts in that category.
func (s *Store) ListPosts(category string) ([]Post, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts WHERE status = ? ORDER BY created_at DESC`, StatusPublished)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(category))
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts WHERE status = ? AND instr(lower(categories), ',' || ? || ',') > 0 ORDER BY created_at DESC`,
			StatusPublished, normalized)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListAllPosts returns every post, drafts and archived included, newest first.
func (s *Store) ListAllPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListCategories returns a sorted, deduplicated slice of categories used by
// published posts.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT categories FROM posts WHERE status = ?`, StatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var cats string
		if err := rows.Scan(&cats); err != nil {
			return nil, err
		}
		for _, c := range parseCategories(cats) {
			set[strings.ToLower(c)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for c := range set {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// DeletePost removes a post by identifier.
func (s *Store) DeletePost(id string) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPage returns a CMS-authored landing page by slug.
func (s *Store) GetPage(slug string) (Page, error) {
	var p Page
	var secs string
	err := s.db.QueryRow(`SELECT slug, title, sections FROM pages WHERE slug = ?`, slug).
		Scan(&p.Slug, &p.Title, &secs)
	if err != nil {
		return Page{}, err
	}
	if err := json.Unmarshal([]byte(secs), &p.Sections); err != nil {
		return Page{}, fmt.Errorf("decode sections for page %s: %w", slug, err)
	}
	return p, nil
}

// SavePage upserts a landing page.
func (s *Store) SavePage(p Page) error {
	secs, err := encodeSections(p.Sections)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO pages (slug, title, sections) VALUES (?, ?, ?)`,
		p.Slug, p.Title, secs)
	return err
}

// SaveImage records metadata for a processed upload.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

func encodeSections(list []sections.Envelope) (string, error) {
	if list == nil {
		return "[]", nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode sections: %w", err)
	}
	return string(b), nil
}

func postFormat(f string) string {
	if f == FormatSimple {
		return FormatSimple
	}
	return FormatStandard
}

// categoryString stores categories comma-wrapped (",food,hiking,") so SQL
// instr filtering can match whole names.
func categoryString(cats []string) string {
	var normalized []string
	for _, c := range FilterEmpty(cats) {
		normalized = append(normalized, strings.ToLower(c))
	}
	return "," + strings.Join(normalized, ",") + ","
}

// parseCategories splits a comma-wrapped category string back into a slice.
func parseCategories(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
