// Package cache provides a durable cache of clause translations keyed by
// clause identity and semi-naïve version. The driver and the translate
// command neither read nor write it; entries are looked up through the
// `cache get` command. Grounded on the store package's
// SQLite discipline: WAL mode, busy timeout, a single writer connection,
// schema applied from an embedded file.
package cache

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramjson"
)

//go:embed schema.sql
var schemaSQL string

// Cache stores translated RAM statements keyed by clause identity and
// semi-naïve version.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a SQLite-backed cache at path, applying pragmas
// and schema. Idempotent — safe to call multiple times against the same
// file.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("cache: exec %q: %w", p, err)
		}
	}
	return nil
}

// ClauseKey returns the clause part of a cache entry's key: the SHA-256 of
// the clause's source location and source text, which double as its
// identity since the core does not itself content-address the input AST.
// version is not hashed; Get and Put take it as a separate key column.
func ClauseKey(c *ast.Clause, version int) string {
	h := sha256.New()
	h.Write([]byte(c.SourceLocation.String()))
	h.Write([]byte{0x00})
	h.Write([]byte(c.SourceText))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the RAM hash and canonical JSON stored for (clauseHash,
// version), and whether an entry was found. The RAM tree itself
// is not reconstructed — Get returns the cached canonical bytes and hash
// for the caller to verify against a freshly-computed ramjson.Hash rather
// than round-tripping through a JSON-to-ram.Statement decoder, which this
// package does not implement (§4.9: translation has no partial recovery,
// so a cache hit must be verified, not trusted blindly).
func (c *Cache) Get(clauseHash string, version int) (ramHash string, ramJSON []byte, ok bool, err error) {
	row := c.db.QueryRow(
		`SELECT ram_hash, ram_json FROM translations WHERE clause_hash = ? AND version = ?`,
		clauseHash, version,
	)
	if err := row.Scan(&ramHash, &ramJSON); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf("cache: get %s/%d: %w", clauseHash, version, err)
	}
	return ramHash, ramJSON, true, nil
}

// Put stores stmt's canonical encoding under (clauseHash, version).
func (c *Cache) Put(clauseHash string, version int, stmt ram.Statement, nowUnix int64) error {
	val, err := ramjson.EncodeStatement(stmt)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	canonical, err := ramjson.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}
	ramHash, err := ramjson.Hash(stmt)
	if err != nil {
		return fmt.Errorf("cache: hash: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO translations (clause_hash, version, ram_hash, ram_json, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(clause_hash, version) DO UPDATE SET
		   ram_hash = excluded.ram_hash,
		   ram_json = excluded.ram_json,
		   created_at = excluded.created_at`,
		clauseHash, version, ramHash, canonical, nowUnix,
	)
	if err != nil {
		return fmt.Errorf("cache: put %s/%d: %w", clauseHash, version, err)
	}
	return nil
}
