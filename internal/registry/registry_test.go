package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/badski/internal/core"
)

type stubGame struct {
	id, title, desc string
	resets          int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Description() string                  { return g.desc }
func (g *stubGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegistry(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub", title: "Zed"} })
	Register("aa_stub", func() Game { return &stubGame{id: "aa_stub", title: "Ay", desc: "first"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() = %+v, want sorted by id", list)
		}
	}
	if len(list) < 2 || list[0].ID != "aa_stub" {
		t.Fatalf("List() = %+v, want aa_stub first", list)
	}
	if list[0].Description != "first" {
		t.Errorf("Description = %q, want %q", list[0].Description, "first")
	}

	if info, ok := Info("zz_stub"); !ok || info.Title != "Zed" {
		t.Errorf("Info() = %+v, %v", info, ok)
	}
	if !Exists("aa_stub") || Exists("nope") {
		t.Error("Exists() is wrong")
	}

	g1, err := Create("aa_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("aa_stub")
	if g1 == g2 {
		t.Error("Create() should return a fresh instance each call")
	}

	if _, err := Create("nope"); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("Create(unknown) error = %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })
}
