package utils

// CursorPagination describes one page of a cursor-based listing. Cursors are
// row ids; a nil cursor means there is no page in that direction.
type CursorPagination struct {
	Limit         int     `json:"limit"`
	HasNextPage   bool    `json:"has_next_page"`
	HasPrevPage   bool    `json:"has_prev_page"`
	NextCursor    *string `json:"next_cursor"`
	PrevCursor    *string `json:"prev_cursor"`
	CurrentCursor *string `json:"current_cursor"`
}

// OffsetPagination describes one page of an offset-based listing.
type OffsetPagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalFoods  int64 `json:"total_foods"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// ClampLimit clamps a requested page size to [1, max], defaulting to max when
// the request carries no usable value.
func ClampLimit(requested, max int) int {
	if requested <= 0 || requested > max {
		return max
	}
	return requested
}

// BuildCursorPagination derives the pagination block from a fetched page.
// firstID and lastID are the boundary row ids of the page in display order;
// hasMore reports whether the repository saw rows beyond the page.
func BuildCursorPagination(limit int, cursor, direction, firstID, lastID string, hasMore bool) CursorPagination {
	p := CursorPagination{Limit: limit}

	if cursor != "" {
		c := cursor
		p.CurrentCursor = &c
	}

	// Paging backwards always reports a previous page and never a next one;
	// clients walk prev until the page comes back empty.
	if direction == "prev" {
		p.HasNextPage = false
		p.HasPrevPage = true
	} else {
		p.HasNextPage = hasMore
		p.HasPrevPage = cursor != ""
	}

	if p.HasNextPage && lastID != "" {
		id := lastID
		p.NextCursor = &id
	}
	if p.HasPrevPage && firstID != "" {
		id := firstID
		p.PrevCursor = &id
	}

	return p
}

// BuildOffsetPagination derives the pagination block for an offset listing.
// total is capped by the repository at maxRows, so the page count is too.
func BuildOffsetPagination(page, pageSize int, total int64, maxRows int) OffsetPagination {
	if total > int64(maxRows) {
		total = int64(maxRows)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return OffsetPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalFoods:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// PageOffset converts a 1-based page number to a row offset.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
