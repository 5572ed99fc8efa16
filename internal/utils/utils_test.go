package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil("   "))
	assert.Equal(t, "padel", *StringOrNil("  padel\t"))
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, 0, OrZero[int](nil))
	assert.Equal(t, 7, OrZero(Ptr(7)))
}

func TestSplitNonEmpty(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blanks only", " , ,", nil},
		{"trimmed", " a ,b,, c ", []string{"a", "b", "c"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitNonEmpty(tc.in, ","))
		})
	}
}
