package autodocs

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink represents a URL found in page markup, with metadata
// about where it was found.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "nav", "toc", "content", "footer"
}

// LinkExtractor extracts prioritized same-host links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns discovered links with
	// priority. The baseURL is used to resolve relative URLs; links
	// to other hosts are dropped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)

	// Name returns the extractor's identifier (e.g., "mkdocs", "generic").
	Name() string
}
