package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewRefNoFormat(t *testing.T) {
	re := regexp.MustCompile(`^BKG-[0-9A-Z]+-[0-9A-Z]{4}$`)
	for i := 0; i < 50; i++ {
		got := NewRefNo("BKG")
		if !re.MatchString(got) {
			t.Fatalf("ref number %q does not match expected format", got)
		}
	}
}

func TestNewRefNoWithFixedSuffix(t *testing.T) {
	got := NewRefNoWith("PAY", func(n int) string { return strings.Repeat("a", n) })
	if !strings.HasPrefix(got, "PAY-") {
		t.Fatalf("missing prefix: %q", got)
	}
	if !strings.HasSuffix(got, "-AAAA") {
		t.Fatalf("suffix not uppercased or wrong length: %q", got)
	}
}

func TestRandSuffixLength(t *testing.T) {
	for _, n := range []int{1, 4, 8} {
		if got := RandSuffix(n); len(got) != n {
			t.Fatalf("RandSuffix(%d) returned %q", n, got)
		}
	}
}
