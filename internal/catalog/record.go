package catalog

// Record is one product row from the record source. Name is the sole join
// key between the source and the images directory; lookups on it are
// case-insensitive.
type Record struct {
	Name        string
	Title       string
	Description string

	// Display fields, used verbatim in rendering.
	Size     string
	Date     string
	Price    string
	Material string
	Paint    string
	Type     string
	Place    string

	SEOTitle       string
	SEODescription string
	SEOKeywords    string
}
