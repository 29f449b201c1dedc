package graph

import (
	"strings"
	"testing"

	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
)

func TestBuilderBox(t *testing.T) {
	b := NewBuilder()
	front, _ := b.Panel("front", path.Rect(0, 0, 90, 50), MaterialSpec{Name: "ply"})
	side, _ := b.Panel("side", path.Rect(0, 0, 90, 40), MaterialSpec{Name: "ply", Thickness: 3})
	b.Joint(JointData{Panel: front, Edge: 1, Type: joint.TypeTabs, Params: joint.DefaultParams(), Mate: side})
	b.Joint(JointData{Panel: side, Edge: 1, Type: joint.TypeSlots, Params: joint.DefaultParams(), Mate: front})
	placed := b.Place(side, &Vec3{Z: 50}, &Vec3{X: 90})
	b.Assembly("box", front, placed)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Roots) != 1 || g.Roots[0] != g.MustLookup("box").ID {
		t.Errorf("roots = %v, want only the assembly", g.Roots)
	}
	if th := g.Get(front).Data.(PanelData).Material.Thickness; th != 3 {
		t.Errorf("default thickness = %f, want 3", th)
	}
	if n := len(g.JointsOf(side)); n != 1 {
		t.Errorf("joints of side = %d, want 1", n)
	}
	if r := ValidateAll(g); len(r.Errors) != 0 || len(r.Warnings) != 0 {
		t.Errorf("built graph should validate cleanly: %+v", r)
	}
}

func TestBuilderAutoRoot(t *testing.T) {
	b := NewBuilder()
	a, _ := b.Panel("a", path.Rect(0, 0, 10, 10), MaterialSpec{})
	c, _ := b.Panel("c", path.Rect(0, 0, 10, 10), MaterialSpec{})
	b.Joint(JointData{Panel: a, Edge: 1, Params: joint.DefaultParams()})
	p := b.Place(c, &Vec3{X: 20}, nil)

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Roots) != 2 || g.Roots[0] != a || g.Roots[1] != p {
		t.Errorf("roots = %v, want [a place]", g.Roots)
	}
}

func TestBuilderJointIDsUnique(t *testing.T) {
	b := NewBuilder()
	a, _ := b.Panel("a", path.Rect(0, 0, 10, 10), MaterialSpec{})
	j1, _ := b.Joint(JointData{Panel: a, Edge: 1, Params: joint.DefaultParams()})
	j2, _ := b.Joint(JointData{Panel: a, Edge: 1, Params: joint.DefaultParams()})
	if j1 == j2 {
		t.Error("repeated joints on one edge need distinct IDs")
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	b.Panel("a", path.Rect(0, 0, 10, 10), MaterialSpec{})
	if _, err := b.Panel("a", path.Rect(0, 0, 10, 10), MaterialSpec{}); err == nil {
		t.Error("duplicate panel should fail immediately")
	}
	b.Panel("", nil, MaterialSpec{})
	b.Joint(JointData{})
	b.Assembly("a")

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{`"a" already defined`, "name must not be empty", "no target panel"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestAutoRootPrefersAssemblies(t *testing.T) {
	b := NewBuilder()
	a, _ := b.Panel("a", path.Rect(0, 0, 10, 10), MaterialSpec{})
	b.Panel("loose", path.Rect(0, 0, 10, 10), MaterialSpec{})
	inner, _ := b.Assembly("inner", a)
	outer, _ := b.Assembly("outer", inner)

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Roots) != 1 || g.Roots[0] != outer {
		t.Errorf("roots = %v, want only the outer assembly", g.Roots)
	}
	if !hasWarning(Validate(g), `"loose"`) {
		t.Error("a panel outside every assembly should be reported as an orphan")
	}
}
