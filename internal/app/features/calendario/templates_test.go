package calendario

import (
	"strings"
	"testing"
)

// Deleting a single class is the one action that asks before acting; every
// other popover action fires immediately.
func TestPopoverDeleteAsksForConfirmation(t *testing.T) {
	raw, err := FS.ReadFile("templates/popover.gohtml")
	if err != nil {
		t.Fatalf("read popover template: %v", err)
	}
	src := string(raw)

	_, rest, found := strings.Cut(src, "{{.DeleteURL}}")
	if !found {
		t.Fatal("popover template has no delete form")
	}
	guard := rest[:strings.Index(rest, ">")]
	if !strings.Contains(guard, "return confirm(") {
		t.Error("delete form must ask for confirmation before submitting")
	}

	if strings.Contains(src[:strings.Index(src, "{{.DeleteURL}}")], "confirm(") {
		t.Error("only the delete form should be guarded")
	}
}
