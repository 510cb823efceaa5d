package dto

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the uniform success envelope; every 2xx body has this shape.
// Error envelopes are built by the handlers so they can attach error-specific
// fields (code, retryAfterMinutes, availableBalance).
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// OK wraps payload data in the success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// PaginationMeta describes one page of a listing.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationMeta computes the page count for a listing result.
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
