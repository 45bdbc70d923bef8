package registry

import (
	"testing"

	"github.com/vovakirdan/framehost/internal/engine"
)

type stubEngine struct{ id string }

func (s *stubEngine) ID() string             { return s.id }
func (s *stubEngine) Title() string          { return "Stub " + s.id }
func (s *stubEngine) Resolution() (int, int) { return 8, 4 }
func (s *stubEngine) Create(engine.Host)     {}
func (s *stubEngine) Tick()                  {}
func (s *stubEngine) ScreenBuffer() []uint32 { return make([]uint32, 32) }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() engine.Engine { return &stubEngine{id: "zz-stub"} })
	Register("aa-stub", func() engine.Engine { return &stubEngine{id: "aa-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}

	e, err := Create("aa-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if e.ID() != "aa-stub" {
		t.Errorf("Create() returned %q", e.ID())
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	aa, zz := -1, -1
	for i, id := range ids {
		switch id {
		case "aa-stub":
			aa = i
			if list[i].Width != 8 || list[i].Height != 4 {
				t.Errorf("info geometry = %dx%d, expected 8x4", list[i].Width, list[i].Height)
			}
		case "zz-stub":
			zz = i
		}
	}
	if aa < 0 || zz < 0 || aa > zz {
		t.Errorf("List() not sorted by id: %v", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-engine"); err == nil {
		t.Error("Create() of unknown engine should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() engine.Engine { return &stubEngine{id: "dup-stub"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup-stub", func() engine.Engine { return &stubEngine{id: "dup-stub"} })
}
