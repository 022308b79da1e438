package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/orgs", DefaultPage, DefaultLimit},
		{"explicit", "/orgs?page=3&limit=50", 3, 50},
		{"limit capped", "/orgs?limit=500", DefaultPage, MaxLimit},
		{"invalid values ignored", "/orgs?page=abc&limit=-1", DefaultPage, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseParams(httptest.NewRequest("GET", tt.url, nil))
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", p.Page, p.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestMetaFor(t *testing.T) {
	p := Params{Page: 2, Limit: 20}
	meta := p.MetaFor(45)

	if meta.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Error("page 2 of 3 should have both neighbours")
	}
	if p.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset())
	}
}
