// ═══════════════════════════════════════════════════════════════════════════════
// REQUEST WINDOW: Zero-Result Analytics
// ═══════════════════════════════════════════════════════════════════════════════
// Operations teams want one number: "how many recent searches found
// nothing?" RequestQueue tracks it over a sliding window of the most recent
// 1440 requests, one per minute of a day.
//
// HOW THE WINDOW SLIDES:
// ----------------------
// Every observed find appends one cell to a deque and, once the deque holds
// more than 1440 cells, evicts the oldest. A running counter is bumped on
// appending a zero-result cell and decremented when a zero-result cell
// falls out, so NoResultRequests is O(1):
//
//	observe(empty)    → push [zero],     counter++
//	observe(3 docs)   → push [non-zero]
//	... 1440 cells later ...
//	observe(anything) → oldest cell evicted; counter-- if it was zero
//
// The queue is a pure observer of the server: it issues finds and looks at
// the result length. It shares the server's threading contract and adds a
// constraint of its own: one queue, one caller at a time.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

// RequestWindowSize is the number of most recent requests the zero-result
// counter covers.
const RequestWindowSize = 1440

// RequestQueue runs searches against a server and tracks how many of the
// most recent RequestWindowSize requests returned no documents.
type RequestQueue struct {
	server      *SearchServer
	requests    []bool // true = the request returned zero documents
	zeroResults int
}

// NewRequestQueue creates a queue observing the given server.
func NewRequestQueue(server *SearchServer) *RequestQueue {
	return &RequestQueue{server: server}
}

// AddFindRequest runs FindTopDocuments and records the outcome.
//
// A failed find (parse error and the like) is not recorded: only requests
// that produced a result list, empty or not, enter the window.
func (q *RequestQueue) AddFindRequest(policy Policy, rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	results, err := q.server.FindTopDocuments(policy, rawQuery, predicate)
	if err != nil {
		return nil, err
	}
	q.Observe(results)
	return results, nil
}

// Observe records one find outcome in the window.
//
// Exposed so results obtained through other paths (the batch fan-out, for
// example) can still be counted.
func (q *RequestQueue) Observe(results []Document) {
	isZero := len(results) == 0
	q.requests = append(q.requests, isZero)
	if isZero {
		q.zeroResults++
	}
	if len(q.requests) > RequestWindowSize {
		if q.requests[0] {
			q.zeroResults--
		}
		q.requests = q.requests[1:]
	}
}

// NoResultRequests returns how many requests in the current window
// returned zero documents.
func (q *RequestQueue) NoResultRequests() int {
	return q.zeroResults
}
