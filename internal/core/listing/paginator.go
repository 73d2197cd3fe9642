package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPageSize is the fixed page size of every listing.
const DefaultPageSize = 10

// GroupPostsCap limits a group listing to its most recent posts before paging.
const GroupPostsCap = 12

// Paginator splits an ordered result set into 1-based pages.
// Cap, when positive, truncates the result set before it is paged.
type Paginator struct {
	PageSize int
	Cap      int
}

// Default is the paginator shared by all listings.
var Default = Paginator{PageSize: DefaultPageSize}

// Window is the slice of an ordered result set that makes up one page.
type Window struct {
	Number   int
	NumPages int
	Count    int64
	Offset   int
	Limit    int
}

// Window resolves the requested page number against count matching rows.
// Out-of-range page numbers clamp to the first or last page; an empty
// result set still has one (empty) page.
func (p Paginator) Window(count int64, requested int) Window {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}
	if p.Cap > 0 && count > int64(p.Cap) {
		count = int64(p.Cap)
	}

	numPages := int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	n := requested
	if n < 1 {
		n = 1
	}
	if n > numPages {
		n = numPages
	}

	offset := (n - 1) * size
	limit := int(count) - offset
	if limit > size {
		limit = size
	}
	if limit < 0 {
		limit = 0
	}

	return Window{Number: n, NumPages: numPages, Count: count, Offset: offset, Limit: limit}
}

// ParsePage reads a raw "page" query value; anything that is not a number is page 1.
// A number too large for an int is past every last page, so it saturates.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	return n
}

// Page is one page of a listing.
type Page[T any] struct {
	Items    []T   `json:"results"`
	Number   int   `json:"page"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
}

// NewPage returns an empty page positioned by w.
func NewPage[T any](w Window) *Page[T] {
	return &Page[T]{
		Items:    make([]T, 0, w.Limit),
		Number:   w.Number,
		NumPages: w.NumPages,
		Count:    w.Count,
	}
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p *Page[T]) NextNumber() int   { return p.Number + 1 }
func (p *Page[T]) PrevNumber() int   { return p.Number - 1 }

// MapPage converts the items of a page, keeping its position.
func MapPage[S, T any](p *Page[S], f func(S) T) *Page[T] {
	out := &Page[T]{
		Items:    make([]T, 0, len(p.Items)),
		Number:   p.Number,
		NumPages: p.NumPages,
		Count:    p.Count,
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, f(item))
	}
	return out
}
