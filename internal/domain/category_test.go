package domain

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		profession string
		want       Category
	}{
		{"Actor", CategoryPerformer},
		{"actress and model", CategoryPerformer},
		{"Film Director", CategoryDirector},
		{"Producer", CategoryProducer},
		{"Playback Singer", CategoryMusician},
		{"Politician", CategoryPolitician},
		{"Poet", CategoryWriter},
		{"Screenwriter", CategoryWriter},
		{"", CategoryUnclassified},
		{"Businessman", CategoryUnclassified},
		// first matching rule wins
		{"Actor and Director", CategoryPerformer},
		{"Director, Producer", CategoryDirector},
		{"Singer turned Politician", CategoryMusician},
	}

	for _, tt := range tests {
		t.Run(tt.profession, func(t *testing.T) {
			if got := Classify(tt.profession); got != tt.want {
				t.Errorf("Classify(%q): expected %s, got %s", tt.profession, tt.want, got)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(cats))
	}
	if cats[len(cats)-1] != CategoryUnclassified {
		t.Errorf("expected unclassified last, got %s", cats[len(cats)-1])
	}
	if kws := CategoryWriter.Keywords(); len(kws) != 2 {
		t.Errorf("expected writer keywords [writer poet], got %v", kws)
	}
	if kws := CategoryUnclassified.Keywords(); kws != nil {
		t.Errorf("expected no keywords for unclassified, got %v", kws)
	}
}

func TestPalettes(t *testing.T) {
	t.Run("every category has both colors", func(t *testing.T) {
		for _, c := range Categories() {
			if DefaultCanvasPalette.Color(c) == "" {
				t.Errorf("missing canvas color for %s", c)
			}
			if DefaultBadgePalette.Color(c) == "" {
				t.Errorf("missing badge color for %s", c)
			}
		}
	})

	t.Run("canvas colors", func(t *testing.T) {
		if got := DefaultCanvasPalette.Color(CategoryPerformer); got != "#e74c3c" {
			t.Errorf("expected #e74c3c, got %s", got)
		}
		if got := DefaultCanvasPalette.Color(Category("bogus")); got != "#95a5a6" {
			t.Errorf("expected fallback #95a5a6, got %s", got)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		p := DefaultCanvasPalette.WithOverrides(map[string]string{
			"Director": "#000000",
			"unknown":  "#ffffff",
			"writer":   "",
		})
		if got := p.Color(CategoryDirector); got != "#000000" {
			t.Errorf("expected override #000000, got %s", got)
		}
		if _, ok := p[Category("unknown")]; ok {
			t.Error("expected unknown category to be ignored")
		}
		if got := p.Color(CategoryWriter); got != "#e67e22" {
			t.Errorf("expected empty override to be ignored, got %s", got)
		}
		if DefaultCanvasPalette.Color(CategoryDirector) != "#3498db" {
			t.Error("expected default palette to be unchanged")
		}
	})
}

func TestMemberValid(t *testing.T) {
	if (Member{Name: "  "}).Valid() {
		t.Error("expected blank name to be invalid")
	}
	if !(Member{Name: "Raj"}).Valid() {
		t.Error("expected named member to be valid")
	}
	if (Family{Name: ""}).Valid() {
		t.Error("expected unnamed family to be invalid")
	}
	ds := Dataset{{Name: "A", Members: []Member{{Name: "x"}, {}}}, {Name: "B"}}
	if ds.MemberCount() != 2 {
		t.Errorf("expected 2 members, got %d", ds.MemberCount())
	}
}
