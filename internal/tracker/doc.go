// Package tracker records which release of each United States Code title
// has been ingested into the corpus.
//
// The upstream pipeline publishes titles at release points like "113-21".
// The tracker persists one row per (title, release, content hash) so the
// host can tell whether a title file changed since the last load and
// report ingest history:
//
//	tr, _ := tracker.Open("uscsearch.db")
//	defer tr.Close()
//
//	_ = tr.RecordLoad(ctx, 5, "113-21", hash, time.Now())
//	latest, err := tr.Latest(ctx, 5)
//
// Recording an identical load twice is a no-op. Storage is SQLite; the
// driver is selected at build time (modernc.org/sqlite by default,
// mattn/go-sqlite3 under the cgo tag).
package tracker
