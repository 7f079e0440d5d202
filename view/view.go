// Package view derives the client-visible file list from a raw listing:
// search filter, size filter, sort order, and the session-scoped favorite
// annotation. Derivation is pure and recomputed whenever the listing or any
// option changes.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mediakeep/mediakeep"
)

// Size bucket boundaries, exact: 1 MiB and 10 MiB.
const (
	smallLimit  = 1 << 20
	mediumLimit = 10 << 20
)

// SizeBucket selects a size range. Files with unknown size match only
// SizeAll; they are never defaulted into a bucket.
type SizeBucket string

const (
	SizeAll    SizeBucket = "all"
	SizeSmall  SizeBucket = "small"  // size < 1 MiB
	SizeMedium SizeBucket = "medium" // 1 MiB <= size < 10 MiB
	SizeLarge  SizeBucket = "large"  // size >= 10 MiB
)

// SortOrder selects the listing order.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
	SortSizeAsc  SortOrder = "size-asc"
	SortSizeDesc SortOrder = "size-desc"
)

// Options controls one derivation pass.
type Options struct {
	// Search filters by case-insensitive substring match on the name.
	// Empty means no filtering.
	Search string

	// Size keeps only files in the bucket. Zero value means SizeAll.
	Size SizeBucket

	// Sort orders the result. Zero value means SortNewest.
	Sort SortOrder

	// Locale drives the name comparison. Zero value compares with the
	// language-neutral collation.
	Locale language.Tag
}

// Derive filters and sorts the listing. Filters commute; the sort is always
// applied last. The input slice is not mutated.
func Derive(records []*mediakeep.FileRecord, opts Options) []*mediakeep.FileRecord {
	result := make([]*mediakeep.FileRecord, 0, len(records))

	search := strings.ToLower(opts.Search)
	for _, rec := range records {
		if search != "" && !strings.Contains(strings.ToLower(rec.Name), search) {
			continue
		}
		if !inBucket(rec.Size, opts.Size) {
			continue
		}
		result = append(result, rec)
	}

	sortRecords(result, opts)
	return result
}

func inBucket(size *int64, bucket SizeBucket) bool {
	switch bucket {
	case "", SizeAll:
		return true
	}
	if size == nil {
		// Unknown size never defaults into a bucket.
		return false
	}
	switch bucket {
	case SizeSmall:
		return *size < smallLimit
	case SizeMedium:
		return *size >= smallLimit && *size < mediumLimit
	case SizeLarge:
		return *size >= mediumLimit
	default:
		return true
	}
}

func sortRecords(records []*mediakeep.FileRecord, opts Options) {
	order := opts.Sort
	if order == "" {
		order = SortNewest
	}

	var less func(a, b *mediakeep.FileRecord) bool
	switch order {
	case SortNewest:
		less = func(a, b *mediakeep.FileRecord) bool { return modified(a) > modified(b) }
	case SortOldest:
		less = func(a, b *mediakeep.FileRecord) bool { return modified(a) < modified(b) }
	case SortNameAsc, SortNameDesc:
		coll := collate.New(opts.Locale)
		if order == SortNameAsc {
			less = func(a, b *mediakeep.FileRecord) bool { return coll.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b *mediakeep.FileRecord) bool { return coll.CompareString(a.Name, b.Name) > 0 }
		}
	case SortSizeAsc:
		less = func(a, b *mediakeep.FileRecord) bool { return size(a) < size(b) }
	case SortSizeDesc:
		less = func(a, b *mediakeep.FileRecord) bool { return size(a) > size(b) }
	default:
		return
	}

	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}

// modified returns the record's modification time in unix milliseconds,
// treating a missing value as epoch 0.
func modified(rec *mediakeep.FileRecord) int64 {
	if rec.LastModified == nil {
		return 0
	}
	return rec.LastModified.UnixMilli()
}

// size returns the record's size for sorting, treating a missing value as 0.
func size(rec *mediakeep.FileRecord) int64 {
	if rec.Size == nil {
		return 0
	}
	return *rec.Size
}
