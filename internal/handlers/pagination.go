package handlers

import (
	"github.com/baomythoi/leefit/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// pageRequest is the ?page=&limit= pair of a listing. Bad or missing values
// fall back to the first page and the default limit.
type pageRequest struct {
	Page  int
	Limit int
}

func pageFromQuery(c *fiber.Ctx) pageRequest {
	p := pageRequest{
		Page:  parsePositiveInt(c.Query("page"), 1),
		Limit: parsePositiveInt(c.Query("limit"), defaultPageLimit),
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p pageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p pageRequest) Meta(total int) models.PaginationMeta {
	meta := models.PaginationMeta{Page: p.Page, Limit: p.Limit, Total: total}
	if total > 0 {
		meta.TotalPages = (total + p.Limit - 1) / p.Limit
	}
	return meta
}
