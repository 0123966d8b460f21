package sms

import "testing"

func TestNormalizeUK(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"07911123456", "+447911123456"},
		{"+447911123456", "+447911123456"},
		{" 07911123456 ", "+447911123456"},
		{"447911123456", "447911123456"},
	}
	for _, tc := range cases {
		if got := normalizeUK(tc.in); got != tc.want {
			t.Fatalf("normalizeUK(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{AuthToken: "t", FromNumber: "+44"}); err == nil {
		t.Fatal("missing account sid accepted")
	}
	if _, err := NewClient(Config{AccountSID: "sid", AuthToken: "t"}); err == nil {
		t.Fatal("missing from number accepted")
	}
	if _, err := NewClient(Config{AccountSID: "sid", AuthToken: "t", FromNumber: "+447000000000"}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
