package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/clientpulse-api/internal/listing"
	"github.com/sjperalta/clientpulse-api/internal/services"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 500
)

type SearchHandler struct {
	searchSvc *services.SearchService
}

func NewSearchHandler(searchSvc *services.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

// Index searches one entity: /search/:entity?q=&limit=&sort=&direction=&filter=field:op:value
func (h *SearchHandler) Index(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), defaultSearchLimit, maxSearchLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := parseFilters(c.QueryArray("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.searchSvc.Search(c.Request.Context(), services.SearchQuery{
		Entity:  c.Param("entity"),
		Query:   c.Query("q"),
		Limit:   limit,
		Filters: filters,
		Sort: listing.SortConfig{
			Field:     c.Query("sort"),
			Direction: listing.ParseDirection(c.Query("direction")),
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
