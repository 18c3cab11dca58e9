package pdfpage

// maxFullRender is the page count at or below which every page is
// rasterized.
const maxFullRender = 4

// SelectPages returns the 0-indexed pages to rasterize for a document of
// totalPages. Documents of four pages or fewer render in full; larger
// documents render only the first two and last two pages. This is a
// resource bound, not a content sample: middle pages are never rendered
// for large documents.
func SelectPages(totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= maxFullRender {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i
		}
		return pages
	}
	return []int{0, 1, totalPages - 2, totalPages - 1}
}
