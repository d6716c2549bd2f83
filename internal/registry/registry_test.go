package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/isoworld/internal/core"
)

type stubScene struct{ id string }

func (s *stubScene) ID() string               { return s.id }
func (s *stubScene) Title() string            { return "Stub " + s.id }
func (s *stubScene) Reset(core.RuntimeConfig) {}
func (s *stubScene) Render(*core.Screen)      {}
func (s *stubScene) State() core.SceneState   { return core.SceneState{} }
func (s *stubScene) Step(core.InputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Scene { return &stubScene{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered scene does not exist")
	}
	s, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID() != "zz-stub" {
		t.Errorf("ID() = %q", s.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub zz-stub"
		}
	}
	if !found {
		t.Error("List() missing the stub or its title")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create of unknown scene should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Scene { return &stubScene{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz-dup", func() Scene { return &stubScene{id: "zz-dup"} })
}
