package driver

import (
	"strings"
	"testing"
)

func TestNumberedSource(t *testing.T) {
	got := numberedSource("#version 430 core\nvoid main() {\n}\n")
	want := "   1: #version 430 core\n   2: void main() {\n   3: }\n"
	if got != want {
		t.Errorf("numberedSource:\n got %q\nwant %q", got, want)
	}
}

func TestLocationKeyDistinguishesPrograms(t *testing.T) {
	if locationKey(1, "u_time") == locationKey(2, "u_time") {
		t.Error("keys for different programs collide")
	}
	if !strings.HasPrefix(locationKey(7, "a"), "7\x00") {
		t.Errorf("key = %q", locationKey(7, "a"))
	}
}
