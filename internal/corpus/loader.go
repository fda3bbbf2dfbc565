package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKLambda/uscsearch/pkg/types"
)

// Options configures a DirStore.
type Options struct {
	CacheSize int              // Max cached titles (default: 64)
	CacheTTL  time.Duration    // Per-entry TTL; zero disables expiry
	Clock     func() time.Time // Injected clock (default: time.Now)
}

// DirStore implements Store over a directory of processed title JSON
// files named usc01.json .. usc54.json.
type DirStore struct {
	dir   string
	cache *titleCache
}

// LoadResult describes one title ingested by LoadAll.
type LoadResult struct {
	TitleNumber int
	Release     string // USC release point, e.g. "113-21"; may be empty
	ContentHash [32]byte
	Chapters    int
	Sections    int
}

// Stats summarizes the corpus for status reporting.
type Stats struct {
	TitleFiles   int // usc*.json files present in the data directory
	CachedTitles int
}

// NewDirStore creates a store reading from dir. The directory must exist.
func NewDirStore(dir string, opts Options) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	size := opts.CacheSize
	if size <= 0 {
		size = 64
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	cache, err := newTitleCache(size, opts.CacheTTL, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create title cache: %w", err)
	}

	return &DirStore{dir: dir, cache: cache}, nil
}

// GetTitle returns one title, loading and caching it on first access.
func (s *DirStore) GetTitle(ctx context.Context, number int) (*types.Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !types.ValidTitleNumber(number) {
		return nil, ErrInvalidNumber
	}

	if title := s.cache.get(number); title != nil {
		return title, nil
	}

	title, _, _, err := s.loadFile(number)
	if err != nil {
		return nil, err
	}

	s.cache.put(number, title)
	return title, nil
}

// ListTitles returns summaries for every title file present, ordered by
// number. Files that fail to load are skipped rather than aborting the
// whole listing.
func (s *DirStore) ListTitles(ctx context.Context) ([]types.TitleSummary, error) {
	numbers, err := s.titleNumbers()
	if err != nil {
		return nil, err
	}

	summaries := make([]types.TitleSummary, 0, len(numbers))
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		title, err := s.GetTitle(ctx, n)
		if err != nil {
			continue
		}
		summaries = append(summaries, types.TitleSummary{Number: title.Number, Name: title.Name})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Number < summaries[j].Number
	})
	return summaries, nil
}

// LoadAll warms the cache with every title file, loading concurrently.
// Individual malformed files are skipped; the returned results describe
// what was actually ingested, ordered by title number.
func (s *DirStore) LoadAll(ctx context.Context) ([]LoadResult, error) {
	numbers, err := s.titleNumbers()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results []LoadResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, n := range numbers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			title, hash, release, err := s.loadFile(n)
			if err != nil {
				// One malformed title never aborts the scan.
				return nil
			}
			s.cache.put(n, title)

			mu.Lock()
			results = append(results, LoadResult{
				TitleNumber: title.Number,
				Release:     release,
				ContentHash: hash,
				Chapters:    len(title.Chapters),
				Sections:    title.SectionCount(),
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TitleNumber < results[j].TitleNumber
	})
	return results, nil
}

// Invalidate drops every cached title. The next access reloads from disk.
func (s *DirStore) Invalidate() {
	s.cache.purge()
}

// Stats reports corpus counts for status tooling.
func (s *DirStore) Stats() (Stats, error) {
	numbers, err := s.titleNumbers()
	if err != nil {
		return Stats{}, err
	}
	return Stats{TitleFiles: len(numbers), CachedTitles: s.cache.len()}, nil
}

// titleFileRe matches processed title files and captures the number.
var titleFileRe = regexp.MustCompile(`^usc(\d+)\.json$`)

// titleNumbers scans the data directory for title files.
func (s *DirStore) titleNumbers() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var numbers []int
	for _, e := range entries {
		m := titleFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
			continue
		}
		if types.ValidTitleNumber(n) {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

// File-shaped structs mirroring the upstream processor's JSON layout.

type titleFile struct {
	Metadata fileMetadata `json:"metadata"`
	Content  fileContent  `json:"content"`
}

type fileMetadata struct {
	Release         string `json:"release"`
	PublicationName string `json:"publicationName"`
}

type fileContent struct {
	Title    fileTitle     `json:"title"`
	Chapters []fileChapter `json:"chapters"`
}

type fileTitle struct {
	Num     string `json:"num"`
	Heading string `json:"heading"`
}

type fileChapter struct {
	Num      string        `json:"num"`
	Heading  string        `json:"heading"`
	Sections []fileSection `json:"sections"`
}

type fileSection struct {
	Num         string           `json:"num"`
	Heading     string           `json:"heading"`
	Content     string           `json:"content"`
	Subsections []fileSubsection `json:"subsections"`
}

type fileSubsection struct {
	Num  string `json:"num"`
	Text string `json:"text"`
}

// loadFile reads and validates one title file.
func (s *DirStore) loadFile(number int) (*types.Title, [32]byte, string, error) {
	var zero [32]byte

	data, err := s.readTitleFile(number)
	if err != nil {
		return nil, zero, "", err
	}

	var file titleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zero, "", fmt.Errorf("failed to parse title %d: %w", number, err)
	}

	title := file.toTitle(number)
	if err := title.Validate(); err != nil {
		return nil, zero, "", fmt.Errorf("title %d failed validation: %w", number, err)
	}

	return title, sha256.Sum256(data), file.Metadata.Release, nil
}

// readTitleFile accepts both zero-padded (usc01.json) and bare
// (usc1.json) filenames, preferring the padded form.
func (s *DirStore) readTitleFile(number int) ([]byte, error) {
	padded := filepath.Join(s.dir, fmt.Sprintf("usc%02d.json", number))
	if data, err := os.ReadFile(padded); err == nil {
		return data, nil
	}

	bare := filepath.Join(s.dir, fmt.Sprintf("usc%d.json", number))
	data, err := os.ReadFile(bare)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read title %d: %w", number, err)
	}
	return data, nil
}

// toTitle converts the loose file shape into a validated entity. Missing
// headings and bodies become empty strings; malformed units never abort
// the load.
func (f *titleFile) toTitle(number int) *types.Title {
	name := strings.TrimSpace(f.Content.Title.Heading)
	if name == "" {
		name = fmt.Sprintf("Title %d", number)
	}

	chapters := make([]types.Chapter, 0, len(f.Content.Chapters))
	for i, fc := range f.Content.Chapters {
		ch := types.Chapter{
			Number:  normalizeChapterNum(fc.Num, i+1),
			Heading: strings.TrimSpace(fc.Heading),
		}
		ch.Sections = make([]types.Section, 0, len(fc.Sections))
		for j, fs := range fc.Sections {
			sec := types.Section{
				Number:  normalizeSectionNum(fs.Num, j+1),
				Heading: strings.TrimSpace(fs.Heading),
				Body:    strings.TrimSpace(fs.Content),
			}
			for _, fsub := range fs.Subsections {
				sec.Subsections = append(sec.Subsections, types.Subsection{
					Number: strings.TrimSpace(fsub.Num),
					Text:   strings.TrimSpace(fsub.Text),
				})
			}
			ch.Sections = append(ch.Sections, sec)
		}
		chapters = append(chapters, ch)
	}

	return &types.Title{Number: number, Name: name, Chapters: chapters}
}

// chapterNumRe extracts the identifier from strings like "CHAPTER 1A".
var chapterNumRe = regexp.MustCompile(`(?i)chapter\s+([0-9]+[a-zA-Z]*)`)

// normalizeChapterNum reduces "CHAPTER 1A—HEADING" to "1A", falling back
// to the chapter's 1-based position.
func normalizeChapterNum(raw string, position int) string {
	if m := chapterNumRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	trimmed := strings.Trim(strings.TrimSpace(raw), ".—-")
	if trimmed != "" && len(trimmed) <= 4 {
		return trimmed
	}
	return fmt.Sprintf("%d", position)
}

// sectionNumRe extracts the identifier from strings like "§ 101." or
// "§ 112a.".
var sectionNumRe = regexp.MustCompile(`§+\s*([0-9][0-9a-zA-Z.\-]*?)\.?\s*$`)

// normalizeSectionNum reduces "§ 101." to "101", falling back to the
// section's 1-based position.
func normalizeSectionNum(raw string, position int) string {
	if m := sectionNumRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	trimmed := strings.Trim(strings.TrimSpace(raw), "§. ")
	if trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("%d", position)
}
