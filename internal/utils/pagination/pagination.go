package pagination

import "github.com/gofiber/fiber/v2"

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Params is the normalized page request.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Meta is the pagination block attached to every paginated listing.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ParseFromRequest reads page/limit query parameters from a Fiber context.
// Values are passed through as-is; range validation belongs to the service.
func ParseFromRequest(c *fiber.Ctx) Params {
	return New(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// New builds Params from raw page/limit values.
func New(page, limit int) Params {
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Valid reports whether the params are in range.
func (p Params) Valid() bool {
	return p.Page >= 1 && p.Limit >= 1 && p.Limit <= MaxLimit
}

// MetaFor computes the pagination metadata for a total row count.
func MetaFor(p Params, total int64) Meta {
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) > 0 {
		totalPages++
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
