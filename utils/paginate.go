package utils

// Page describes one page of a fixed-size pagination over total items.
// Start and End are slice bounds into the full result set.
type Page struct {
	Number     int
	TotalPages int
	TotalCount int
	PerPage    int
	Start      int
	End        int
}

// Paginate computes page bounds for the requested 1-based page number.
// Out-of-range requests clamp: below 1 becomes page 1, beyond the last page
// becomes the last page. An empty result set still has one (empty) page.
func Paginate(total, perPage, requested int) Page {
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		TotalCount: total,
		PerPage:    perPage,
		Start:      start,
		End:        end,
	}
}
