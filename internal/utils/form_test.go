package utils

/*

go test -run 'TestSplitTags|TestParseRating' -v ./internal/utils -count=1

*/

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"加班,996", []string{"加班", "996"}},
		{"加班，996", []string{"加班", "996"}},
		{" 双休 ,， 五险一金 ,", []string{"双休", "五险一金"}},
		{"a,b，c", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		if got := SplitTags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("in=%q want=%#v got=%#v", tc.in, tc.want, got)
		}
	}
}

func TestParseRating(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		isNil bool
	}{
		{"5", 5, false},
		{" 4.5 ", 4.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tc := range cases {
		got := ParseRating(tc.in)
		if tc.isNil {
			if got != nil {
				t.Fatalf("in=%q want nil got=%v", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("in=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
}
