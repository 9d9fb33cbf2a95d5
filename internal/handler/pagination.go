package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads page/per_page query params, falling back to page 1 and
// the endpoint's default page size on absent or invalid values.
func pageParams(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}

	return page, perPage
}
