package coerce

import (
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2008, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	dec, _, _ := apd.NewFromString("1.50")
	cases := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{123456, "123456"},
		{int8(-3), "-3"},
		{uint(7), "7"},
		{true, "true"},
		{2.5, "2.5"},
		{float32(0.1), "0.1"},
		{1e21, "1000000000000000000000"},
		{ts, "2008-03-01T11:00:00Z"},
		{&ts, "2008-03-01T11:00:00Z"},
		{dec, "1.50"},
		{*dec, "1.50"},
		{netip.MustParseAddr("::1"), "::1"},
	}
	for _, c := range cases {
		got, ok := Format(reflect.ValueOf(c.in))
		if !ok {
			t.Errorf("Format(%v) reported no value", c.in)
			continue
		}
		if got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormat_Nil(t *testing.T) {
	var p *time.Time
	if _, ok := Format(reflect.ValueOf(p)); ok {
		t.Error("nil pointer should have no wire form")
	}
	if _, ok := Format(reflect.Value{}); ok {
		t.Error("invalid value should have no wire form")
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	in := time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC)
	text, _ := Format(reflect.ValueOf(in))
	v, err := Scalar(text, reflect.TypeFor[time.Time]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Interface().(time.Time).Equal(in) {
		t.Errorf("round trip = %v, want %v", v.Interface(), in)
	}
}
