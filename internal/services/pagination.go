package services

// PageSize is the fixed page size for report item and library listings.
const PageSize = 15

// PageInfo describes a listing's position. Next and Prev are null at
// their respective boundaries.
type PageInfo struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	Next        *int `json:"next"`
	Prev        *int `json:"prev"`
}

// PagedResult wraps a page of records with its page info.
type PagedResult struct {
	Data  interface{} `json:"data"`
	Pages PageInfo    `json:"pages"`
}

// singlePage is the page info used when a name filter bypasses
// pagination and everything comes back at once.
func singlePage() PageInfo {
	return PageInfo{CurrentPage: 1, TotalPages: 1}
}

// paginate normalizes the requested page (0 and 1 both mean the first
// page) and computes the offset and boundaries for total records.
func paginate(page int, total int64) (int, PageInfo) {
	current := page
	if current <= 0 {
		current = 1
	}
	offset := (current - 1) * PageSize

	totalPages := int(total / PageSize)
	if total%PageSize != 0 {
		totalPages++
	}

	info := PageInfo{CurrentPage: current, TotalPages: totalPages}
	if current < totalPages {
		next := current + 1
		info.Next = &next
	}
	if current > 1 {
		prev := current - 1
		info.Prev = &prev
	}
	return offset, info
}
