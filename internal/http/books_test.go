package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/database/reviews"
	"github.com/mrlokans/bookclub/internal/entities"
)

type booksTestEnv struct {
	router *gin.Engine
	db     *gorm.DB
	user   entities.User
	book   entities.Book
}

// setupBooksTest builds a router with the book routes. The POST route is
// preceded by a stub middleware that injects the test user's identity the
// way the session middleware would.
func setupBooksTest(t *testing.T) *booksTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Book{}, &entities.Review{}))

	env := &booksTestEnv{db: db}

	env.user = entities.User{Username: "reader", Key: "deadbeef", Salt: []byte("salt")}
	require.NoError(t, db.Create(&env.user).Error)

	env.book = entities.Book{Title: "Effective Java", Author: "Joshua Bloch", ISBN: "9780134685991", Year: 2018}
	require.NoError(t, db.Create(&env.book).Error)

	controller := NewBooksController(books.NewRepository(db), reviews.NewRepository(db), nil)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").ParseGlob("../../templates/*.html")))
	router.GET("/books/:id", controller.BookPage)
	router.POST("/books/:id", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, env.user.ID)
		c.Set(auth.ContextKeyUsername, env.user.Username)
		c.Next()
	}, controller.SubmitReview)
	router.GET("/random", controller.RandomBook)

	env.router = router
	return env
}

func (env *booksTestEnv) postReview(t *testing.T, bookPath string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", bookPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.router.ServeHTTP(w, req)
	return w
}

func TestBooksController_BookPage(t *testing.T) {
	t.Run("renders book details", func(t *testing.T) {
		env := setupBooksTest(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/books/1", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Effective Java")
		assert.Contains(t, w.Body.String(), "9780134685991")
		assert.Contains(t, w.Body.String(), "No reviews yet")
	})

	t.Run("unknown book id returns not found", func(t *testing.T) {
		env := setupBooksTest(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/books/999", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Book not found")
	})

	t.Run("invalid book id returns bad request", func(t *testing.T) {
		env := setupBooksTest(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/books/abc", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_SubmitReview(t *testing.T) {
	t.Run("stores the review with concatenated reactions", func(t *testing.T) {
		env := setupBooksTest(t)

		form := url.Values{}
		form.Set("review", "A classic.")
		form.Set("rating", "5")
		form["emoji"] = []string{"👍", "❤️", "😂"}

		w := env.postReview(t, "/books/1", form)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Review submitted!")
		assert.Contains(t, w.Body.String(), "A classic.")

		var stored entities.Review
		require.NoError(t, env.db.Where("user_id = ? AND book_id = ?", env.user.ID, env.book.ID).First(&stored).Error)
		assert.Equal(t, "👍❤️😂", stored.Reaction)
		assert.Equal(t, 5, stored.Rating)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("rejects a second review from the same user", func(t *testing.T) {
		env := setupBooksTest(t)

		form := url.Values{}
		form.Set("review", "First review")
		form.Set("rating", "4")
		env.postReview(t, "/books/1", form)

		form.Set("review", "Second review")
		w := env.postReview(t, "/books/1", form)

		assert.Contains(t, w.Body.String(), "You already submitted a review for this book.")

		var count int64
		env.db.Model(&entities.Review{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects more than three reactions", func(t *testing.T) {
		env := setupBooksTest(t)

		form := url.Values{}
		form.Set("review", "Too enthusiastic")
		form.Set("rating", "5")
		form["emoji"] = []string{"👍", "❤️", "😂", "😮"}

		w := env.postReview(t, "/books/1", form)

		assert.Contains(t, w.Body.String(), "Please limit your emoji selection to 3.")

		var count int64
		env.db.Model(&entities.Review{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		env := setupBooksTest(t)

		form := url.Values{}
		form.Set("review", "No rating")
		form.Set("rating", "11")

		w := env.postReview(t, "/books/1", form)

		assert.Contains(t, w.Body.String(), "Please select a rating between 1 and 5.")
	})
}

func TestBooksController_RandomBook(t *testing.T) {
	env := setupBooksTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/random", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books/1", w.Header().Get("Location"))
}
