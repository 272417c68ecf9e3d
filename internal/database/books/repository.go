// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(id)
package books

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByISBN retrieves a book by its ISBN.
func (r *Repository) GetBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SearchBooks performs a case-insensitive substring match against title,
// author and ISBN. An empty or all-whitespace query returns no rows and
// executes no statement.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	pattern := "%" + strings.ToUpper(query) + "%"

	var books []entities.Book
	err := r.db.
		Where("UPPER(title) LIKE ? OR UPPER(author) LIKE ? OR UPPER(isbn) LIKE ?",
			pattern, pattern, pattern).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetRandomBook returns a uniformly random book from the catalog.
func (r *Repository) GetRandomBook() (*entities.Book, error) {
	var book entities.Book
	err := r.db.Order("RANDOM()").First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a book to the catalog.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// HasISBN reports whether a book with the given ISBN already exists.
func (r *Repository) HasISBN(isbn string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// CountBooks returns the number of books in the catalog.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
