package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParamsClamping(t *testing.T) {
	cases := []struct {
		name            string
		page, perPage   string
		wantPage        int
		wantPerPage     int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "3", "25", 3, 25},
		{"zero page", "0", "25", 1, 25},
		{"negative page", "-2", "25", 1, 25},
		{"per_page over max", "1", "500", 1, 100},
		{"per_page zero", "1", "0", 1, 10},
		{"garbage", "x", "y", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ParsePageParams(tc.page, tc.perPage)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantPerPage, p.PerPage)
		})
	}
}

func TestPageParamsSlice(t *testing.T) {
	p := PageParams{Page: 2, PerPage: 3}
	lo, hi := p.Slice(8)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 6, hi)

	lo, hi = PageParams{Page: 4, PerPage: 3}.Slice(8)
	assert.Equal(t, 8, lo)
	assert.Equal(t, 8, hi)

	lo, hi = PageParams{Page: 1, PerPage: 10}.Slice(0)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestPageParamsTotalPages(t *testing.T) {
	p := PageParams{Page: 1, PerPage: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}
