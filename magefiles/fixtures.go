//go:build mage

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const fixturesDir = "testdata"

type book struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Year   int      `json:"year"`
	Tags   []string `json:"tags"`
}

var books = []book{
	{Title: "Dune", Author: "Frank Herbert", Year: 1965, Tags: []string{"scifi", "classic"}},
	{Title: "Emma", Author: "Jane Austen", Year: 1815, Tags: []string{"romance"}},
	{Title: "Neuromancer", Author: "William Gibson", Year: 1984, Tags: []string{"scifi", "cyberpunk"}},
	{Title: "Middlemarch", Author: "George Eliot", Year: 1871, Tags: []string{"classic"}},
	{Title: "Kindred", Author: "Octavia E. Butler", Year: 1979, Tags: []string{"scifi", "historical"}},
}

// Fixtures writes testdata/books.jsonl and testdata/library.db (table
// "books") for trying the jsonl and sqlite sources:
//
//	GRIDVIEW_JSONL_PATH=testdata/books.jsonl gridview browse --source jsonl
//	GRIDVIEW_SQLITE_PATH=testdata/library.db GRIDVIEW_SQLITE_TABLE=books gridview browse --source sqlite
func Fixtures() error {
	if err := os.MkdirAll(fixturesDir, 0o755); err != nil {
		return err
	}
	if err := writeBooksJSONL(filepath.Join(fixturesDir, "books.jsonl")); err != nil {
		return err
	}
	return writeBooksDB(filepath.Join(fixturesDir, "library.db"))
}

func writeBooksJSONL(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, b := range books {
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	fmt.Println("wrote", path)
	return nil
}

func writeBooksDB(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE books (title TEXT, author TEXT, year INTEGER)`); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	for _, b := range books {
		if _, err := db.Exec(`INSERT INTO books (title, author, year) VALUES (?, ?, ?)`, b.Title, b.Author, b.Year); err != nil {
			return fmt.Errorf("inserting %q: %w", b.Title, err)
		}
	}
	fmt.Println("wrote", path)
	return nil
}
