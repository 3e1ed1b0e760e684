package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ppf-inventory/internal/application/dto"
)

func TestPageRequest_NormalizeYWindow(t *testing.T) {
	tests := []struct {
		name      string
		in        dto.PageRequest
		total     int
		wantLimit int
		wantStart int
		wantEnd   int
	}{
		{"por defecto", dto.PageRequest{}, 50, 20, 0, 20},
		{"límite máximo", dto.PageRequest{Limit: 500}, 150, 100, 0, 100},
		{"offset negativo", dto.PageRequest{Limit: 5, Offset: -3}, 3, 5, 0, 3},
		{"offset fuera de rango", dto.PageRequest{Limit: 5, Offset: 10}, 3, 5, 3, 3},
		{"página parcial", dto.PageRequest{Limit: 2, Offset: 1}, 2, 2, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.wantLimit, p.Limit)
			start, end := p.Window(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
