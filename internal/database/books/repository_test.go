package books

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRepository(db)
}

func seedBooks(t *testing.T, repo *Repository) {
	t.Helper()
	seed := []entities.Book{
		{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", Year: 2015},
		{Title: "Effective Java", Author: "Joshua Bloch", ISBN: "9780134685991", Year: 2018},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", Year: 2017},
	}
	for i := range seed {
		if err := repo.CreateBook(&seed[i]); err != nil {
			t.Fatalf("failed to seed book: %v", err)
		}
	}
}

func TestSearchBooks(t *testing.T) {
	repo := setupTestRepo(t)
	seedBooks(t, repo)

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"empty query", "", 0},
		{"whitespace only query", "   ", 0},
		{"title substring", "go programming", 1},
		{"uppercase title substring", "GO PROGRAMMING", 1},
		{"author substring", "kleppmann", 1},
		{"isbn substring", "9780134", 2},
		{"no match", "NoSuchTitleXYZ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.SearchBooks(tt.query)
			if err != nil {
				t.Fatalf("SearchBooks(%q) failed: %v", tt.query, err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("SearchBooks(%q) returned %d books, want %d", tt.query, len(results), tt.wantCount)
			}
		})
	}
}

func TestGetBookByISBN(t *testing.T) {
	repo := setupTestRepo(t)
	seedBooks(t, repo)

	book, err := repo.GetBookByISBN("9780134685991")
	if err != nil {
		t.Fatalf("GetBookByISBN failed: %v", err)
	}
	if book.Title != "Effective Java" {
		t.Errorf("expected 'Effective Java', got %q", book.Title)
	}

	if _, err := repo.GetBookByISBN("0000000000000"); err != gorm.ErrRecordNotFound {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestGetRandomBook(t *testing.T) {
	repo := setupTestRepo(t)

	// Empty catalog
	if _, err := repo.GetRandomBook(); err != gorm.ErrRecordNotFound {
		t.Errorf("expected gorm.ErrRecordNotFound on empty catalog, got %v", err)
	}

	seedBooks(t, repo)

	// A random pick always refers to a stored book
	for i := 0; i < 10; i++ {
		book, err := repo.GetRandomBook()
		if err != nil {
			t.Fatalf("GetRandomBook failed: %v", err)
		}
		if _, err := repo.GetBookByID(book.ID); err != nil {
			t.Errorf("random book id %d does not exist: %v", book.ID, err)
		}
	}
}

func TestHasISBN(t *testing.T) {
	repo := setupTestRepo(t)
	seedBooks(t, repo)

	exists, err := repo.HasISBN("9781449373320")
	if err != nil {
		t.Fatalf("HasISBN failed: %v", err)
	}
	if !exists {
		t.Error("expected known ISBN to exist")
	}

	exists, err = repo.HasISBN("0000000000000")
	if err != nil {
		t.Fatalf("HasISBN failed: %v", err)
	}
	if exists {
		t.Error("expected unknown ISBN to be absent")
	}
}
