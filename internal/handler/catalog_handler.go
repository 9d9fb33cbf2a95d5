package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"steamcatalog/backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Catalog exposes the read-only catalog endpoints over gin.
type Catalog struct {
	service *catalog.Service
	logger  *log.Logger
}

func NewCatalog(service *catalog.Service, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{service: service, logger: logger}
}

// GetGameDetail godoc
// @Summary      Get a single game
// @Description  Retrieves a game with its tags and navigational links. Numeric keys are treated as app ids, anything else as an exact game name.
// @Tags         catalog
// @Produce      json
// @Param        key path string true "App id or game name"
// @Success      200 {object} catalog.GameDetail
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /game_detail/{key} [get]
func (h *Catalog) GetGameDetail(c *gin.Context) {
	key := c.Param("key")

	var (
		detail *catalog.GameDetail
		err    error
	)
	// Path params arrive percent-decoded, so "Counter%20Strike" reaches the
	// name lookup with its space restored.
	if appid, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		detail, err = h.service.GameByID(c.Request.Context(), appid)
	} else {
		detail, err = h.service.GameByName(c.Request.Context(), key)
	}
	if err != nil {
		h.renderError(c, err, "Game not found")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetGameListByTag godoc
// @Summary      List games carrying a tag
// @Description  Retrieves a paginated list of app ids for one tag name.
// @Tags         catalog
// @Produce      json
// @Param        tag      path  string true  "Tag name"
// @Param        page     query int    false "Page number" default(1)
// @Param        per_page query int    false "Items per page" default(10)
// @Success      200 {object} catalog.Page
// @Failure      404 {object} ErrorResponse "Tag not found"
// @Failure      500 {object} ErrorResponse
// @Router       /game_list_by_tag/{tag} [get]
func (h *Catalog) GetGameListByTag(c *gin.Context) {
	page, perPage := pageParams(c, 10)

	result, err := h.service.GamesByTag(c.Request.Context(), c.Param("tag"), page, perPage)
	if err != nil {
		h.renderError(c, err, "Tag not found")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGameList godoc
// @Summary      List the current top 100
// @Description  Retrieves a paginated list of app ids ordered by ranking.
// @Tags         catalog
// @Produce      json
// @Param        page     query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(100)
// @Success      200 {object} catalog.Page
// @Failure      500 {object} ErrorResponse
// @Router       /game_list [get]
func (h *Catalog) GetGameList(c *gin.Context) {
	page, perPage := pageParams(c, 100)

	result, err := h.service.Top100(c.Request.Context(), page, perPage)
	if err != nil {
		h.renderError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// renderError maps a lookup miss to a 404 with the given message and every
// other failure to a generic 500; detail stays in the server log.
func (h *Catalog) renderError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, catalog.ErrNotFound) && notFoundMsg != "" {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
