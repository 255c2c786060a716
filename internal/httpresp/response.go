package httpresp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// List responde a coleção inteira; nil vira [].
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Pagination lê ?page= e ?limit= com os limites da API.
func Pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return page, limit, (page - 1) * limit
}

func Page[T any](c *gin.Context, data []T, page, limit int, total int64) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, PageResponse[T]{
		Data:  data,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}
