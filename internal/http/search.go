package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/database/books"
)

type SearchController struct {
	books *books.Repository
}

func NewSearchController(repo *books.Repository) *SearchController {
	return &SearchController{books: repo}
}

// SearchPage renders the catalog search results. Empty and all-whitespace
// queries render the empty search page without hitting the database.
func (controller *SearchController) SearchPage(c *gin.Context) {
	query := c.Query("q")

	if strings.TrimSpace(query) == "" {
		c.HTML(http.StatusOK, "search.html", mergePageData(c, gin.H{
			"Title": "Search",
			"Query": "",
		}))
		return
	}

	results, err := controller.books.SearchBooks(query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching books")
		return
	}

	if len(results) == 0 {
		c.HTML(http.StatusOK, "error.html", mergePageData(c, gin.H{
			"Title":   "No Results",
			"Message": "Sorry, your search for '" + query + "' did not return any results.",
		}))
		return
	}

	c.HTML(http.StatusOK, "search.html", mergePageData(c, gin.H{
		"Title":   "Search",
		"Query":   query,
		"Results": results,
	}))
}
