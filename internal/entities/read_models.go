package entities

// Read models returned by the catalog and circulation lookups. Fields are
// matched to result columns by name, never by position.

// ReaderMatch is a reader found by a partial name search.
type ReaderMatch struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

// BookSummary is a book that still has copies on the shelf.
type BookSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// BookChoice is a candidate for issuing: the book plus the library holding it.
type BookChoice struct {
	ID        uint   `json:"id"`
	LibraryID uint   `json:"library_id"`
	Title     string `json:"title"`
}

// BookInfo is one line of the full catalog listing.
type BookInfo struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	ThemeName  string `json:"theme_name"`
	Quantity   int    `json:"quantity"`
}
