package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/database/reviews"
)

// BookStatsResponse is the public JSON shape for a single book's
// aggregate review stats. AverageScore is null when there are no reviews.
type BookStatsResponse struct {
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Year         int      `json:"year"`
	ISBN         string   `json:"isbn"`
	ReviewCount  int64    `json:"review_count"`
	AverageScore *float64 `json:"average_score"`
}

type APIController struct {
	books   *books.Repository
	reviews *reviews.Repository
}

func NewAPIController(booksRepo *books.Repository, reviewsRepo *reviews.Repository) *APIController {
	return &APIController{
		books:   booksRepo,
		reviews: reviewsRepo,
	}
}

// GetBookStats returns details and aggregate review stats for a single
// book looked up by ISBN.
func (controller *APIController) GetBookStats(c *gin.Context) {
	isbn := c.Param("isbn")

	book, err := controller.books.GetBookByISBN(isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Invalid book_isbn")
			return
		}
		respondInternalError(c, err, "lookup book by isbn")
		return
	}

	stats, err := controller.reviews.GetBookStats(book.ID)
	if err != nil {
		respondInternalError(c, err, "compute book stats")
		return
	}

	c.JSON(http.StatusOK, BookStatsResponse{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  stats.ReviewCount,
		AverageScore: stats.AverageScore,
	})
}
