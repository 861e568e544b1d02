package note

import (
	"os"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Meeting Notes", "meeting-notes"},
		{"  Q3 Roadmap!  ", "q3-roadmap"},
		{"déjà vu", "déjà-vu"},
		{"///", "untitled"},
		{"", "untitled"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateWritesFrontmatter(t *testing.T) {
	dir := t.TempDir()

	n := NewFromQuery(dir, "Meeting Notes")
	n.Tags = []string{"work"}
	if err := n.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(n.Path())
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	if !strings.Contains(content, "title: Meeting Notes") {
		t.Errorf("missing title in %q", content)
	}
	if !strings.Contains(content, "- work") {
		t.Errorf("missing tag in %q", content)
	}

	if err := n.Create(); err == nil {
		t.Fatal("expected error creating an existing note")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	n := NewFromQuery(dir, "ghost")

	exists, err := n.Exists()
	if err != nil || exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	if err := n.Create(); err != nil {
		t.Fatal(err)
	}
	exists, err = n.Exists()
	if err != nil || !exists {
		t.Fatalf("Exists after create = %v, %v", exists, err)
	}
}
