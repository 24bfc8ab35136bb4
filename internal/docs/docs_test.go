package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "cli,dragdrop,keys" {
		t.Fatalf("topics = %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" DragDrop ")
	if !ok || !strings.Contains(body, "Items always win over lists") {
		t.Fatalf("Get(dragdrop) = %v", ok)
	}
	for _, bad := range []string{"", "missing", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q) should fail", bad)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title("keys"); got != "Keys" {
		t.Fatalf("Title(keys) = %q", got)
	}
	if got := Title("nope"); got != "nope" {
		t.Fatalf("Title(nope) = %q", got)
	}
}
