package middleware

import "testing"

func TestSubdomainFromHost(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"acme.corptransit.id", "acme"},
		{"acme.corptransit.id:8080", "acme"},
		{"ACME.corptransit.id", "acme"},
		{"corptransit.id", ""},
		{"localhost", ""},
		{"localhost:8080", ""},
		{"127.0.0.1:8080", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SubdomainFromHost(tc.host); got != tc.want {
			t.Fatalf("SubdomainFromHost(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}
