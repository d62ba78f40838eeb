package util

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestString2Int(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"7", 7, true},
		{"7.1", 7, true},
		{" 11-2 ", 11, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := String2Int(c.in)
		is.Equal(ok, c.ok)
		is.Equal(got, c.want)
	}
}

func TestString2Uint(t *testing.T) {
	is := is.New(t)
	is.Equal(String2Uint("12"), uint(12))
	is.Equal(String2Uint("-1"), uint(0))
	is.Equal(String2Uint("x"), uint(0))
}

func TestParseBool(t *testing.T) {
	is := is.New(t)
	is.True(ParseBool("True"))
	is.True(ParseBool("on"))
	is.True(!ParseBool("False"))
	is.True(!ParseBool(""))
}

func TestRandString(t *testing.T) {
	is := is.New(t)
	is.Equal(len(RandString(10)), 10)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := RandString(24)
		is.True(!seen[s])
		is.Equal(strings.Trim(s, letters), "")
		seen[s] = true
	}
}
