// Package reviews provides database operations for book reviews.
package reviews

import (
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// ErrDuplicateReview is returned when the composite unique index on
// (user_id, book_id) rejects a second review from the same user.
var ErrDuplicateReview = errors.New("review already exists for this user and book")

// BookReview is a review row joined with the submitting user's name,
// as displayed on the book detail page.
type BookReview struct {
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	Reaction  string    `json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds aggregate review figures for one book. Average is nil when
// the book has no reviews.
type Stats struct {
	ReviewCount  int64
	AverageScore *float64
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview stores a new review with a server-assigned timestamp.
// Returns ErrDuplicateReview when the user already reviewed the book.
func (r *Repository) CreateReview(review *entities.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

// HasUserReview reports whether the user already reviewed the book.
func (r *Repository) HasUserReview(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetReviewsForBook returns all reviews for a book joined with the
// submitting username, ordered by submission time ascending.
func (r *Repository) GetReviewsForBook(bookID uint) ([]BookReview, error) {
	var rows []BookReview
	err := r.db.Model(&entities.Review{}).
		Select("users.username, reviews.comment, reviews.rating, reviews.reaction, reviews.created_at").
		Joins("INNER JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBookStats computes the review count and average rating for a book.
func (r *Repository) GetBookStats(bookID uint) (*Stats, error) {
	var row struct {
		ReviewCount  int64
		AverageScore *float64
	}
	err := r.db.Model(&entities.Review{}).
		Select("COUNT(id) AS review_count, AVG(rating) AS average_score").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &Stats{ReviewCount: row.ReviewCount, AverageScore: row.AverageScore}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
