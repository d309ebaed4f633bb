package gbprinter

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Capture is a capture stored in the database.
type Capture struct {
	ID   int64
	SHA1 string
	Name string
	Data string
}

// CaptureDB stores the raw text of captures. Decoded images are never
// stored, they are rebuilt from the capture on export.
type CaptureDB struct {
	db *sql.DB
}

func NewCaptureDB(file string) (*CaptureDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS capture (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, data TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &CaptureDB{
		db: db,
	}, nil
}

func (db *CaptureDB) Close() error {
	return db.db.Close()
}

// Import reads the capture in file and adds it to the database.
func (db *CaptureDB) Import(file string) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return db.Add(filepath.Base(file), string(b))
}

// Add stores data under name unless an identical capture is already
// stored. The SHA1 of data is returned either way.
func (db *CaptureDB) Add(name, data string) (string, error) {
	sha := fmt.Sprintf("%X", sha1.Sum([]byte(data)))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM capture WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		if _, err := db.db.Exec("INSERT INTO capture (sha1, name, data) VALUES (?, ?, ?)", sha, name, data); err != nil {
			return "", err
		}
		return sha, nil
	case nil:
		return sha, nil
	default:
		return "", err
	}
}

// Find returns the capture with the given SHA1, or nil if there isn't one.
func (db *CaptureDB) Find(sha string) (*Capture, error) {
	var c Capture
	switch err := db.db.QueryRow("SELECT id, sha1, name, data FROM capture WHERE sha1 = ?", sha).Scan(&c.ID, &c.SHA1, &c.Name, &c.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &c, nil
	default:
		return nil, err
	}
}

// List returns every stored capture without its data, oldest first.
func (db *CaptureDB) List() ([]Capture, error) {
	rows, err := db.db.Query("SELECT id, sha1, name FROM capture ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		var c Capture
		if err := rows.Scan(&c.ID, &c.SHA1, &c.Name); err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}
