package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		p         Paginator
		count     int64
		requested int
		want      Window
	}{
		{"first page of 25", Default, 25, 1, Window{Number: 1, NumPages: 3, Count: 25, Offset: 0, Limit: 10}},
		{"last partial page", Default, 25, 3, Window{Number: 3, NumPages: 3, Count: 25, Offset: 20, Limit: 5}},
		{"past the end clamps to last", Default, 25, 99, Window{Number: 3, NumPages: 3, Count: 25, Offset: 20, Limit: 5}},
		{"zero clamps to first", Default, 25, 0, Window{Number: 1, NumPages: 3, Count: 25, Offset: 0, Limit: 10}},
		{"negative clamps to first", Default, 25, -4, Window{Number: 1, NumPages: 3, Count: 25, Offset: 0, Limit: 10}},
		{"empty result has one page", Default, 0, 5, Window{Number: 1, NumPages: 1, Count: 0, Offset: 0, Limit: 0}},
		{"exact multiple", Default, 20, 2, Window{Number: 2, NumPages: 2, Count: 20, Offset: 10, Limit: 10}},
		{"cap applies before paging", Paginator{PageSize: 10, Cap: 12}, 15, 2, Window{Number: 2, NumPages: 2, Count: 12, Offset: 10, Limit: 2}},
		{"cap larger than count", Paginator{PageSize: 10, Cap: 12}, 7, 1, Window{Number: 1, NumPages: 1, Count: 7, Offset: 0, Limit: 7}},
		{"zero page size falls back to default", Paginator{}, 11, 2, Window{Number: 2, NumPages: 2, Count: 11, Offset: 10, Limit: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Window(tt.count, tt.requested))
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("last"))
	assert.Equal(t, 3, ParsePage(" 3 "))
	assert.Equal(t, -2, ParsePage("-2"))
	assert.Equal(t, math.MaxInt, ParsePage("99999999999999999999"))
	assert.Equal(t, 1, ParsePage("-99999999999999999999"))
}

func TestWindowHugePageIsLastPage(t *testing.T) {
	w := Default.Window(25, ParsePage("99999999999999999999"))
	assert.Equal(t, 3, w.Number)
	assert.Equal(t, 20, w.Offset)
	assert.Equal(t, 5, w.Limit)
}

func TestPageNavigation(t *testing.T) {
	p := NewPage[int](Default.Window(25, 2))
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, 3, p.NextNumber())
	assert.Equal(t, 1, p.PrevNumber())
	assert.Empty(t, p.Items)

	last := NewPage[int](Default.Window(25, 3))
	assert.False(t, last.HasNext())
}

func TestMapPage(t *testing.T) {
	p := &Page[int]{Items: []int{1, 2, 3}, Number: 2, NumPages: 4, Count: 33}
	out := MapPage(p, func(i int) string { return string(rune('a' + i - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, out.Items)
	assert.Equal(t, 2, out.Number)
	assert.Equal(t, 4, out.NumPages)
	assert.Equal(t, int64(33), out.Count)
}
