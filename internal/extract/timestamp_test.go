package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		epoch  string
		offset string
		want   string
	}{
		{name: "positive offset", epoch: "1760853900", offset: "28800", want: "14:05"},
		{name: "zero offset", epoch: "1760853900", offset: "0", want: "06:05"},
		{name: "negative offset wraps to previous day", epoch: "1760832000", offset: "-3600", want: "23:00"},
		{name: "surrounding whitespace", epoch: " 1760853900 ", offset: "28800\n", want: "14:05"},
		{name: "empty epoch", epoch: "", offset: "28800", want: ""},
		{name: "empty offset", epoch: "1760853900", offset: "", want: ""},
		{name: "non numeric epoch", epoch: "soon", offset: "0", want: ""},
		{name: "non numeric offset", epoch: "1760853900", offset: "+8h", want: ""},
		{name: "fractional epoch", epoch: "1760853900.5", offset: "0", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, NormalizeTimestamp(tt.epoch, tt.offset))
			})
		})
	}
}
