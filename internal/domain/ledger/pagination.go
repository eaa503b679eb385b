package ledger

import "github.com/erp/passbook/internal/domain/shared"

// DefaultPageSize is used when a caller asks for a non-positive page size
const DefaultPageSize = 20

// Paginate slices an assembled ledger. Page numbers start at 1; a page past
// the end is empty but still reports the total page count.
func Paginate(entries []LedgerEntry, page, pageSize int) shared.Paginated[LedgerEntry] {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(entries)
	items := []LedgerEntry{}
	// compare page numbers; (page-1)*pageSize overflows for huge pages
	if page <= shared.TotalPages(int64(total), pageSize) {
		start := (page - 1) * pageSize
		end := min(start+pageSize, total)
		items = entries[start:end]
	}

	return shared.NewPaginated(items, int64(total), page, pageSize)
}
