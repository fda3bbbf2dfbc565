// Package corpus materializes the United States Code document store.
//
// The store reads processed title JSON files (usc01.json .. usc54.json)
// produced by the upstream XML pipeline, validates them into the explicit
// entities in pkg/types, and serves them through the Store interface the
// search core consumes:
//
//	store, _ := corpus.NewDirStore("processed", corpus.Options{})
//	title, err := store.GetTitle(ctx, 5)
//	if errors.Is(err, corpus.ErrNotFound) {
//	    // title 5 contributes nothing
//	}
//
// # Caching
//
// Loaded titles are held in an LRU cache with a per-entry TTL. The clock
// is injected so expiry is testable, and Invalidate drops every entry:
//
//	store, _ := corpus.NewDirStore(dir, corpus.Options{
//	    CacheTTL: 5 * time.Minute,
//	    Clock:    time.Now,
//	})
//	store.Invalidate()
//
// Titles are immutable once loaded; concurrent readers share the cached
// entry without copying.
//
// # Warm-up
//
// LoadAll reads every title file concurrently and reports what was loaded
// (release identifier and content hash per title) so the caller can record
// the ingest in the release tracker.
package corpus
