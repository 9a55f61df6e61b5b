// ═══════════════════════════════════════════════════════════════════════════════
// BATCH QUERY FAN-OUT
// ═══════════════════════════════════════════════════════════════════════════════
// Given many independent queries, run them concurrently against one server
// and return the answers in input order. Searching is read-only, so any
// number of finds may overlap; the fan-out is where the batch gets its
// parallelism, and each individual find runs sequentially inside its
// worker.
//
//	queries:  [q0, q1, q2, q3]
//	             │   │   │   │        (bounded worker pool)
//	             ▼   ▼   ▼   ▼
//	results:  [r0, r1, r2, r3]        (input order preserved)
//
// Workers write into their own slot of a preallocated results slice, so no
// two goroutines share a write target and no collection lock is needed.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ProcessQueries runs every query with the default predicate and returns
// one result list per query, preserving input order.
//
// If any query fails, the error of the FIRST failing query in input order
// is returned and the results are discarded.
func ProcessQueries(server *SearchServer, queries []string) ([][]Document, error) {
	results := make([][]Document, len(queries))
	errs := make([]error, len(queries))

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, rawQuery := range queries {
		i, rawQuery := i, rawQuery
		group.Go(func() error {
			results[i], errs[i] = server.FindTopDocuments(Sequential, rawQuery, nil)
			return nil
		})
	}
	_ = group.Wait() // per-query errors are collected in errs

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ProcessQueriesJoined runs every query and flattens the per-query result
// lists into one slice, still in input order.
func ProcessQueriesJoined(server *SearchServer, queries []string) ([]Document, error) {
	perQuery, err := ProcessQueries(server, queries)
	if err != nil {
		return nil, err
	}
	var joined []Document
	for _, results := range perQuery {
		joined = append(joined, results...)
	}
	return joined, nil
}
