package service

import "plume/internal/models"

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// PostPage is one page of a post listing plus its position in the listing.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
}

// clampPage maps a requested page onto [1, totalPages] and returns the
// effective page plus its row offset. Out-of-range requests land on the
// nearest valid page rather than erroring.
func clampPage(page int, totalCount int64, pageSize int) (int, int) {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, (page - 1) * pageSize
}

func totalPages(totalCount int64, pageSize int) int {
	pages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}
