package dashboard

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntParamSaturates(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 7},
		{"12", 12},
		{" 4.9 ", 4},
		{"-2.5", -2},
		{"abc", 7},
		{"NaN", 7},
		{"99999999999999999999", math.MaxInt},
		{"1e400", math.MaxInt},
		{"+Inf", math.MaxInt},
		{"-99999999999999999999", math.MinInt},
		{"-Inf", math.MinInt},
	}
	for _, tc := range cases {
		q := url.Values{"v": {tc.in}}
		assert.Equal(t, tc.want, intParam(q, "v", 7), tc.in)
	}
}
