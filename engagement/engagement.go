// Package engagement provides reader-facing interaction features: newsletter
// signups, comments, likes, and content reports. It keeps its own SQLite
// database so engagement traffic never contends with content reads.
package engagement

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// salt holds the per-installation random salt for visitor hashing, protected
// by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// VisitorHash creates a salted, truncated SHA-256 fingerprint from IP and
// User-Agent. Raw addresses are never stored.
func VisitorHash(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Comment is a reader comment on a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostSlug  string    `json:"post_slug"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is a reader-submitted problem report about a post.
type Report struct {
	PostSlug    string    `json:"post_slug"`
	Reason      string    `json:"reason"`
	Detail      string    `json:"detail"`
	VisitorHash string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportSink receives content reports. The sqlite Store is the default sink;
// embedders can substitute one that pages a moderator instead.
type ReportSink interface {
	SaveReport(r Report) error
}
