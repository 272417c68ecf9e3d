package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/database/reviews"
	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/metadata"
)

// reviewTimeLayout renders submission timestamps the way the book page
// displays them, e.g. "03:04 PM - 02 Jan 06".
const reviewTimeLayout = "03:04 PM - 02 Jan 06"

type BooksController struct {
	books   *books.Repository
	reviews *reviews.Repository
	counts  *metadata.ReviewCountsClient
}

func NewBooksController(booksRepo *books.Repository, reviewsRepo *reviews.Repository, counts *metadata.ReviewCountsClient) *BooksController {
	return &BooksController{
		books:   booksRepo,
		reviews: reviewsRepo,
		counts:  counts,
	}
}

// reviewView is a review row formatted for template rendering.
type reviewView struct {
	Username string
	Comment  string
	Rating   int
	Reaction string
	Time     string
}

// BookPage renders the detail page for one book.
func (controller *BooksController) BookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBookByID(id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", mergePageData(c, gin.H{
			"Title":   "Not Found",
			"Message": "Book not found",
		}))
		return
	}

	controller.renderBookPage(c, http.StatusOK, book, gin.H{})
}

// SubmitReview handles the review form on the book detail page. The route
// sits behind RequireAuth, so a user ID is always present.
func (controller *BooksController) SubmitReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBookByID(id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", mergePageData(c, gin.H{
			"Title":   "Not Found",
			"Message": "Book not found",
		}))
		return
	}

	userID := auth.GetUserID(c)

	exists, err := controller.reviews.HasUserReview(userID, book.ID)
	if err != nil {
		respondInternalError(c, err, "check existing review")
		return
	}
	if exists {
		controller.renderBookPage(c, http.StatusOK, book, gin.H{
			"Error": "You already submitted a review for this book.",
		})
		return
	}

	comment := c.PostForm("review")
	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil || rating < 1 || rating > 5 {
		controller.renderBookPage(c, http.StatusOK, book, gin.H{
			"Error": "Please select a rating between 1 and 5.",
		})
		return
	}

	reactions := c.PostFormArray("emoji")
	if len(reactions) > entities.MaxReactions {
		controller.renderBookPage(c, http.StatusOK, book, gin.H{
			"Error": "Please limit your emoji selection to 3.",
		})
		return
	}

	review := &entities.Review{
		UserID:   userID,
		BookID:   book.ID,
		Comment:  comment,
		Rating:   rating,
		Reaction: strings.Join(reactions, ""),
	}

	if err := controller.reviews.CreateReview(review); err != nil {
		// The composite unique index catches submissions that raced past
		// the existence check above.
		if errors.Is(err, reviews.ErrDuplicateReview) {
			controller.renderBookPage(c, http.StatusOK, book, gin.H{
				"Error": "You already submitted a review for this book.",
			})
			return
		}
		respondInternalError(c, err, "create review")
		return
	}

	controller.renderBookPage(c, http.StatusOK, book, gin.H{
		"Msg": "Review submitted!",
	})
}

// RandomBook redirects to a uniformly random book's detail page.
func (controller *BooksController) RandomBook(c *gin.Context) {
	book, err := controller.books.GetRandomBook()
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", mergePageData(c, gin.H{
			"Title":   "Not Found",
			"Message": "The catalog is empty.",
		}))
		return
	}

	c.Redirect(http.StatusFound, "/books/"+strconv.FormatUint(uint64(book.ID), 10))
}

// renderBookPage loads the review list and external aggregate data and
// renders the book detail template with any extra page values.
func (controller *BooksController) renderBookPage(c *gin.Context, status int, book *entities.Book, extra gin.H) {
	rows, err := controller.reviews.GetReviewsForBook(book.ID)
	if err != nil {
		respondInternalError(c, err, "load reviews")
		return
	}

	views := make([]reviewView, 0, len(rows))
	for _, row := range rows {
		views = append(views, reviewView{
			Username: row.Username,
			Comment:  row.Comment,
			Rating:   row.Rating,
			Reaction: row.Reaction,
			Time:     row.CreatedAt.Format(reviewTimeLayout),
		})
	}

	// The external lookup is best-effort: the page renders without
	// aggregate data when the service is unavailable.
	var counts *metadata.ReviewCounts
	if controller.counts != nil {
		counts, err = controller.counts.GetReviewCounts(c.Request.Context(), book.ISBN)
		if err != nil {
			log.Printf("Review counts lookup failed for ISBN %s: %v", book.ISBN, err)
			counts = nil
		}
	}

	data := mergePageData(c, gin.H{
		"Title":   book.Title,
		"Book":    book,
		"Data":    counts,
		"Reviews": views,
	})
	for k, v := range extra {
		data[k] = v
	}

	c.HTML(status, "books.html", data)
}
