// internal/webutil/request_test.go
package webutil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"正常系: 指定値を返す", "?page=3", 3},
		{"未指定は1", "", 1},
		{"数値でない値は1", "?page=abc", 1},
		{"0以下は1", "?page=-2", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.expected, ParsePage(r))
		})
	}
}

func TestParsePerPage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"正常系: 指定値を返す", "?per_page=25", 25},
		{"未指定は既定値", "", 10},
		{"上限を超えると上限に丸める", "?per_page=9999", 100},
		{"0以下は既定値", "?per_page=0", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.expected, ParsePerPage(r, 10, 100))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
