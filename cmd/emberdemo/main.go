// Command emberdemo is a tiny stdin-driven demo of the search engine.
//
// INPUT FORMAT:
// -------------
//
//	line 1: stop words, space separated (may be empty)
//	line 2: document count N
//	lines 3..N+2: one document body per line
//	last line: the search query
//
// Every document is added with status ACTUAL and no ratings. The query's
// top results are printed page by page. Any engine error aborts the demo
// with a single generic notice.
//
// EXAMPLE SESSION:
// ----------------
//
//	$ emberdemo <<'EOF'
//	and with
//	3
//	funny pet and nasty rat
//	funny pet with curly hair
//	nasty rat with curly hair
//	curly and funny
//	EOF
//	{ document_id = 1, relevance = 0.2027325540540822, rating = 0 }
//	{ document_id = 0, relevance = 0.1013662770270411, rating = 0 }
//	{ document_id = 2, relevance = 0.1013662770270411, rating = 0 }
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/wizenheimer/ember"
)

type options struct {
	Parallel bool `short:"p" long:"parallel" description:"Run the search with the parallel policy"`
	PageSize int  `long:"page-size" default:"5" description:"Results per printed page"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		// The engine's errors are not user-serviceable from here; report
		// one generic notice and exit cleanly.
		fmt.Println("search request failed")
	}
}

func run(opts options) error {
	reader := bufio.NewScanner(os.Stdin)
	reader.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	server, err := ember.NewFromText(readLine(reader))
	if err != nil {
		return err
	}

	documentCount, err := strconv.Atoi(strings.TrimSpace(readLine(reader)))
	if err != nil {
		return err
	}
	for id := 0; id < documentCount; id++ {
		if err := server.AddDocument(id, readLine(reader), ember.StatusActual, nil); err != nil {
			return err
		}
	}

	query := readLine(reader)
	policy := ember.Sequential
	if opts.Parallel {
		policy = ember.Parallel
	}

	timer := ember.StartTimer("find top documents")
	results, err := server.FindTopDocuments(policy, query, nil)
	timer.Stop()
	if err != nil {
		return err
	}

	for pageNumber, page := range ember.Paginate(results, opts.PageSize) {
		if pageNumber > 0 {
			fmt.Println("--- page break ---")
		}
		for _, doc := range page {
			fmt.Println(doc)
		}
	}
	return nil
}

// readLine reads the next input line, or "" at end of input.
func readLine(reader *bufio.Scanner) string {
	if reader.Scan() {
		return reader.Text()
	}
	return ""
}
