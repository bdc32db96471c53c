package listview

import "slices"

// PageSizes are the only selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
	// From and To are 1-based and inclusive; both are 0 on an empty page.
	From int `json:"from"`
	To   int `json:"to"`
}

func totalPages(rows, size int) int {
	if rows == 0 {
		return 1
	}
	return (rows + size - 1) / size
}

func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

func paginate[T any](rows []T, page, size int) ([]T, PageInfo) {
	pages := totalPages(len(rows), size)
	page = clampPage(page, pages)

	start := (page - 1) * size
	end := min(start+size, len(rows))

	info := PageInfo{
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		TotalRows:  len(rows),
	}
	if start >= end {
		return []T{}, info
	}
	info.From = start + 1
	info.To = end
	return rows[start:end], info
}
