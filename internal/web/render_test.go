package web

import (
	"testing"

	"partsite/internal/catalog"
)

func TestTitleize(t *testing.T) {
	cases := map[string]string{
		"a-button":      "A Button",
		"a.button":      "A Button",
		"cartridge_lid": "Cartridge Lid",
		"nes":           "Nes",
		"NES":           "NES",
		"":              "",
	}
	for in, want := range cases {
		if got := titleize(in); got != want {
			t.Errorf("titleize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestURLsEscapeSegments(t *testing.T) {
	key := catalog.NaturalKey{System: "nes", Device: "power supply", Part: "a/b"}
	if got := partURL(key); got != "/part/nes/power%20supply/a%2Fb" {
		t.Fatalf("unexpected part url %q", got)
	}
	if got := systemURL("nes"); got != "/system/nes/" {
		t.Fatalf("unexpected system url %q", got)
	}
}

func TestPartViewSanitizesDescription(t *testing.T) {
	r, err := newRenderer()
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	view := r.partView(&catalog.Part{
		UUID: "u",
		Key:  catalog.NaturalKey{System: "nes", Device: "controller", Part: "a-button"},
		Attributes: catalog.Attributes{
			Fits:        []string{"NES-004"},
			Description: `<b onclick="x()">bold</b><script>alert(1)</script>`,
		},
	})
	if string(view.Description) != "<b>bold</b>" {
		t.Fatalf("unexpected sanitized description %q", view.Description)
	}
	if len(view.Fits) != 1 || view.Fits[0].URL != "/model/nes/NES-004" {
		t.Fatalf("unexpected fits links %#v", view.Fits)
	}
}
