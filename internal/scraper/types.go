package scraper

// Image is a single <img> occurrence, with its src resolved against the
// page URL.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Record holds the structured content extracted from one page. The zero
// Record (no URL) means the task produced nothing: stopped, failed, or
// filtered. It is never stored as a result.
type Record struct {
	URL             string   `json:"url"`
	Headings        []string `json:"headings"`
	Paragraphs      []string `json:"paragraphs"`
	Images          []Image  `json:"images"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    string   `json:"meta_keywords"`
	MetaOgTitle     string   `json:"meta_og_title"`
}

// Empty reports whether the record carries no data.
func (r Record) Empty() bool {
	return r.URL == ""
}
