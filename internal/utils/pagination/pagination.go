package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params are the page-number pagination inputs taken from the query string.
type Params struct {
	Page    int
	PerPage int
}

// ParseFromRequest reads page/per_page query parameters, defaulting to the
// first page of 10. Range clamping happens in the service layer.
func ParseFromRequest(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return Params{Page: page, PerPage: perPage}
}

// Info is the standardized pagination block returned alongside a page.
type Info struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewInfo computes the pagination block for a page of a collection with
// total items. An empty collection still has one (empty) page.
func NewInfo(page, perPage int, total int64) Info {
	lastPage := int(total / int64(perPage))
	if total%int64(perPage) > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	return Info{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
