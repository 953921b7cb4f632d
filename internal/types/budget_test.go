package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBudget(t *testing.T) {
	cases := []struct {
		name string
		in   []int64
		want Budget
	}{
		{"empty", nil, Budget{Low: 500, High: 1500}},
		{"low only", []int64{800}, Budget{Low: 800, High: 1500}},
		{"both", []int64{100, 300}, Budget{Low: 100, High: 300}},
		{"reversed", []int64{3000, 2000}, Budget{Low: 2000, High: 3000}},
		{"extra values ignored", []int64{1, 2, 3}, Budget{Low: 1, High: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewBudget(tc.in))
		})
	}
}
