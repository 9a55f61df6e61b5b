package ember

// ═══════════════════════════════════════════════════════════════════════════════
// PAGINATION
// ═══════════════════════════════════════════════════════════════════════════════
// Paginate splits a result list into fixed-size pages for display:
//
//	Paginate([d0 d1 d2 d3 d4], 2) → [[d0 d1], [d2 d3], [d4]]
//
// Pages are subslices of the input, not copies; the last page may be
// short. A non-positive page size yields no pages.
// ═══════════════════════════════════════════════════════════════════════════════

// Paginate splits documents into pages of at most pageSize entries.
func Paginate(documents []Document, pageSize int) [][]Document {
	if pageSize <= 0 {
		return nil
	}
	var pages [][]Document
	for start := 0; start < len(documents); start += pageSize {
		end := start + pageSize
		if end > len(documents) {
			end = len(documents)
		}
		pages = append(pages, documents[start:end])
	}
	return pages
}
