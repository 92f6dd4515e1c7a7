package scrape

import (
	"container/heap"
	"sync"

	autodocs "github.com/ziyacivan/autodocs-mcp"
	"github.com/ziyacivan/autodocs-mcp/bloom"
)

// frontier is an in-memory crawl queue with Bloom filter deduplication.
// Links pop in priority order; ties break by insertion order so the
// crawl stays breadth-first within a priority band. Safe for
// concurrent use.
type frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	next  int
}

// newFrontier creates a frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func newFrontier(n uint, fpRate float64) *frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// push adds a link to the frontier. Returns false if the URL has
// already been seen. URLs are normalized (fragment and trailing slash
// stripped) before deduplication.
func (f *frontier) push(link autodocs.DiscoveredLink, depth int) bool {
	url := normalizeURL(link.URL)
	if url == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	link.URL = url
	heap.Push(f.queue, queuedLink{link: link, depth: depth, seq: f.next})
	f.next++
	return true
}

// markSeen records a URL as already visited without queueing it, so a
// later link to it is not fetched again. Used for redirect targets,
// which are only known after fetching.
func (f *frontier) markSeen(rawURL string) {
	url := normalizeURL(rawURL)
	if url == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen.Add(url)
}

// pop returns the next link by priority. The bool result is false if
// the frontier is empty.
func (f *frontier) pop() (autodocs.DiscoveredLink, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return autodocs.DiscoveredLink{}, 0, false
	}
	q, _ := heap.Pop(f.queue).(queuedLink)
	return q.link, q.depth, true
}

// len returns the number of queued links.
func (f *frontier) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// queuedLink pairs a link with its crawl depth and insertion sequence.
type queuedLink struct {
	link  autodocs.DiscoveredLink
	depth int
	seq   int
}

// linkHeap implements heap.Interface. Higher priority pops first;
// equal priorities pop in insertion order.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queuedLink)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
