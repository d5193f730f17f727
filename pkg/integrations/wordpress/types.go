package wordpress

// Rendered is a field WordPress returns as {"rendered": "..."}.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Category is a post category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Post is a blog post. Date is the site-local publish time as sent by the
// API, e.g. "2025-06-02T10:00:00".
type Post struct {
	ID         int      `json:"id"`
	Date       string   `json:"date"`
	Link       string   `json:"link"`
	Title      Rendered `json:"title"`
	Content    Rendered `json:"content"`
	Categories []int    `json:"categories"`
}

// Page is one page of a post listing.
type Page struct {
	Posts      []Post
	TotalPages int
}
