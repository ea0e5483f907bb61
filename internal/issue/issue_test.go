// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	ids := []Id{
		EngineNotFoundId,
		ManifestNotFoundId,
		ManifestInvalidId,
		AppFileNotFoundId,
		InterpreterUnknownId,
		BuildFailedId,
		SnapshotNotFoundId,
	}

	for _, id := range ids {
		known := Lookup(id)
		if known == nil {
			t.Errorf("Lookup(%d) returned nil", id)
			continue
		}
		if known.Id() != id {
			t.Errorf("Lookup(%d).Id() = %d", id, known.Id())
		}
		if known.MarkdownMsg() == "" {
			t.Errorf("issue %d has no guidance text", id)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if Lookup(Id(0)) != nil {
		t.Error("Lookup(0) should return nil")
	}
	if Lookup(Id(9999)) != nil {
		t.Error("Lookup of an unknown id should return nil")
	}
}

func TestExtLinksCloned(t *testing.T) {
	known := Lookup(EngineNotFoundId)
	links := known.ExtLinks()
	if len(links) == 0 {
		t.Fatal("engine issue should carry reference links")
	}

	links[0] = "mutated"
	if known.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks should return a copy")
	}
}

func TestRenderIncludesLinks(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var gotMd, gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotMd = in
		gotStyle = stylePath
		return "rendered", nil
	}

	out, err := Lookup(EngineNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q", out)
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
	if !strings.Contains(gotMd, "## See also") {
		t.Error("rendered markdown should include the links section")
	}
	if !strings.Contains(gotMd, "https://podman.io/docs/installation") {
		t.Error("rendered markdown should include the reference links")
	}
}

func TestRenderWithoutLinks(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var gotMd string
	render = func(in string, stylePath string) (string, error) {
		gotMd = in
		return in, nil
	}

	if _, err := Lookup(ManifestNotFoundId).Render("dark"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(gotMd, "## See also") {
		t.Error("issues without links should not render a links section")
	}
}
