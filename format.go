package autodocs

// Format identifies the generator that produced a documentation site.
type Format string

// Supported documentation formats.
//
// Detection is a closed set: a site is Sphinx if it publishes an
// objects.inv inventory, MkDocs if it publishes a parseable
// sitemap.xml, and Generic otherwise.
const (
	FormatUnknown Format = ""
	FormatSphinx  Format = "sphinx"
	FormatMkDocs  Format = "mkdocs"
	FormatGeneric Format = "generic"
)

// MarkupDetector identifies documentation formats from HTML content.
// It is used as a last resort before classifying a site as Generic,
// when neither format-specific file probe matched.
type MarkupDetector interface {
	// Detect analyzes HTML and returns the identified format.
	// Returns FormatUnknown if the format cannot be determined.
	Detect(html string) Format
}
