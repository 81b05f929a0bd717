package responsive

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/idgen"
)

// countingIDs hands out predictable keys and counts calls.
type countingIDs struct {
	calls int
}

func (g *countingIDs) NewID() string {
	g.calls++
	return "sbtest"
}

func TestIsResponsive(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"string", "block", false},
		{"number", 10, false},
		{"empty map", map[string]any{}, false},
		{"flat map", map[string]any{"color": "red"}, false},
		{"single breakpoint", map[string]any{"md": "none"}, true},
		{"all breakpoints", map[string]any{"xs": 1, "sm": 1, "md": 2, "lg": 3, "xl": 4}, true},
		{"mixed keys", map[string]any{"color": "red", "lg": "blue"}, true},
		{"uppercase is not a breakpoint", map[string]any{"MD": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsResponsive(tt.value); got != tt.want {
				t.Errorf("IsResponsive(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGet_InvalidArguments(t *testing.T) {
	bag := Bag{}

	tests := []struct {
		name   string
		bag    Bag
		plugin string
		vp     breakpoint.Breakpoint
	}{
		{"nil bag", nil, "display", breakpoint.XS},
		{"empty plugin", bag, "", breakpoint.XS},
		{"slash-only plugin", bag, "//", breakpoint.XS},
		{"reserved key", bag, KeyField, breakpoint.XS},
		{"unknown viewport", bag, "display", breakpoint.Breakpoint("tv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Get(tt.bag, tt.plugin, tt.vp)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Get() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGet_Absent(t *testing.T) {
	v, ok, err := Get(Bag{}, "background", breakpoint.MD)
	if err != nil || ok || v != nil {
		t.Errorf("Get() = (%v, %v, %v), want (nil, false, nil)", v, ok, err)
	}
}

func TestGet_ExactViewportOnly(t *testing.T) {
	bag := Bag{"display": map[string]any{"xs": "block"}}

	if v, ok, _ := Get(bag, "display", breakpoint.XS); !ok || v != "block" {
		t.Errorf("Get(xs) = (%v, %v)", v, ok)
	}
	if v, ok, _ := Get(bag, "display", breakpoint.MD); ok || v != nil {
		t.Errorf("Get(md) = (%v, %v), want no cascading", v, ok)
	}
	if v, ok, _ := Get(bag, "display", breakpoint.All); !ok || v != "block" {
		t.Errorf("Get(all) should read xs, got (%v, %v)", v, ok)
	}
}

func TestSet_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		bag    Bag
		plugin string
		value  any
		vp     breakpoint.Breakpoint
	}{
		{"nil bag", nil, "display", "block", breakpoint.All},
		{"empty plugin", Bag{}, "", "block", breakpoint.All},
		{"undefined value", Bag{}, "display", Undefined, breakpoint.MD},
		{"reserved key", Bag{}, "key", "abc", breakpoint.All},
		{"unknown viewport", Bag{}, "display", "block", breakpoint.Breakpoint("xxl")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set(tt.bag, tt.plugin, tt.value, tt.vp)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Set() error = %v, want ErrInvalidArgument", err)
			}
			if tt.bag != nil && len(tt.bag) != 0 {
				t.Errorf("failed Set mutated bag: %v", tt.bag)
			}
		})
	}
}

func TestSet_FlatValueAppliesToEveryViewport(t *testing.T) {
	values := []any{
		"10px",
		42,
		true,
		map[string]any{"color": "red", "image": "none"},
		[]any{"a", "b"},
	}

	for _, v := range values {
		bag := Bag{}
		if err := Set(bag, "background", v, breakpoint.All); err != nil {
			t.Fatalf("Set(%v) error = %v", v, err)
		}
		for _, vp := range breakpoint.Ordered() {
			got, ok, err := Get(bag, "background", vp)
			if err != nil || !ok || !reflect.DeepEqual(got, v) {
				t.Errorf("Get(%s) = (%v, %v, %v), want %v", vp, got, ok, err, v)
			}
		}
	}
}

func TestSet_PerBreakpointWritesKeepSiblings(t *testing.T) {
	pairs := [][2]breakpoint.Breakpoint{
		{breakpoint.XS, breakpoint.SM},
		{breakpoint.MD, breakpoint.XS},
		{breakpoint.XL, breakpoint.LG},
	}

	for _, p := range pairs {
		bag := Bag{}
		a, b := p[0], p[1]
		if err := Set(bag, "size", "v1", a); err != nil {
			t.Fatal(err)
		}
		if err := Set(bag, "size", "v2", b); err != nil {
			t.Fatal(err)
		}

		if got, _, _ := Get(bag, "size", a); got != "v1" {
			t.Errorf("Get(%s) = %v, want v1", a, got)
		}
		if got, _, _ := Get(bag, "size", b); got != "v2" {
			t.Errorf("Get(%s) = %v, want v2", b, got)
		}
	}
}

func TestSet_AllViewportsDiscardsBreakpoints(t *testing.T) {
	bag := Bag{}
	_ = Set(bag, "display", "block", breakpoint.XS)
	_ = Set(bag, "display", "none", breakpoint.LG)

	if err := Set(bag, "display", "inline", breakpoint.All); err != nil {
		t.Fatal(err)
	}

	if bag["display"] != "inline" {
		t.Errorf("stored value = %v, want flat inline", bag["display"])
	}
	for _, vp := range breakpoint.Ordered() {
		if got, ok, _ := Get(bag, "display", vp); !ok || got != "inline" {
			t.Errorf("Get(%s) = (%v, %v), want inline", vp, got, ok)
		}
	}
}

func TestSet_ViewportReplacesFlatValue(t *testing.T) {
	bag := Bag{}
	_ = Set(bag, "background", map[string]any{"color": "red"}, breakpoint.All)
	_ = Set(bag, "background", map[string]any{"color": "blue"}, breakpoint.MD)

	want := map[string]any{"md": map[string]any{"color": "blue"}}
	if !reflect.DeepEqual(bag["background"], want) {
		t.Errorf("stored value = %v, want %v", bag["background"], want)
	}
}

func TestSet_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
		vp    breakpoint.Breakpoint
	}{
		{"flat string all", "auto", breakpoint.All},
		{"flat map at md", map[string]any{"width": "10px"}, breakpoint.MD},
		{"number at xl", 3, breakpoint.XL},
		{"list at xs", []any{"a"}, breakpoint.XS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := Bag{}
			if err := Set(bag, "plugin", tt.value, tt.vp); err != nil {
				t.Fatal(err)
			}
			got, ok, err := Get(bag, "plugin", tt.vp)
			if err != nil || !ok || !reflect.DeepEqual(got, tt.value) {
				t.Errorf("Get() = (%v, %v, %v), want %v", got, ok, err, tt.value)
			}
		})
	}
}

func TestSet_NilResets(t *testing.T) {
	bag := Bag{}
	_ = Set(bag, "display", "block", breakpoint.XS)
	_ = Set(bag, "display", "none", breakpoint.MD)

	if err := Set(bag, "display", nil, breakpoint.MD); err != nil {
		t.Fatalf("Set(nil, md) error = %v", err)
	}
	if !reflect.DeepEqual(bag["display"], map[string]any{"xs": "block"}) {
		t.Errorf("after md reset display = %v", bag["display"])
	}

	if err := Set(bag, "display", nil, breakpoint.XS); err != nil {
		t.Fatal(err)
	}
	if _, exists := bag["display"]; exists {
		t.Errorf("emptied responsive value should be pruned, bag = %v", bag)
	}

	_ = Set(bag, "size", 10, breakpoint.All)
	if err := Set(bag, "size", nil, breakpoint.All); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Get(bag, "size", breakpoint.XS); err != nil {
		t.Fatal(err)
	}
	if _, exists := bag["size"]; exists {
		t.Errorf("flat reset should remove the entry, bag = %v", bag)
	}
}

func TestSet_CleanupPrunesEmptyContainers(t *testing.T) {
	bag := Bag{
		"stale": map[string]any{"inner": map[string]any{}},
		"kept":  map[string]any{"color": "red", "gone": nil},
	}

	_ = Set(bag, "components/button/primary/size", 10, breakpoint.MD)
	_ = Set(bag, "components/button/primary/size", nil, breakpoint.MD)

	if _, exists := bag["components"]; exists {
		t.Errorf("empty component tree should be pruned: %v", bag["components"])
	}
	if _, exists := bag["stale"]; exists {
		t.Error("empty nested maps should be pruned")
	}
	if !reflect.DeepEqual(bag["kept"], map[string]any{"color": "red"}) {
		t.Errorf("non-empty branch lost data: %v", bag["kept"])
	}
}

func TestSet_KeyGeneratedOnce(t *testing.T) {
	gen := &countingIDs{}
	c := New(WithIDGenerator(gen))
	bag := Bag{}

	for i, vp := range breakpoint.Ordered() {
		if err := c.Set(bag, "size", i, vp); err != nil {
			t.Fatal(err)
		}
	}
	_ = c.Set(bag, "size", nil, breakpoint.All)

	if gen.calls != 1 {
		t.Errorf("id generator called %d times, want 1", gen.calls)
	}
	if bag.Key() != "sbtest" {
		t.Errorf("Key() = %q", bag.Key())
	}
}

func TestSet_ExistingKeyKept(t *testing.T) {
	gen := &countingIDs{}
	c := New(WithIDGenerator(gen))
	bag := NewBagWithGenerator(idgen.GeneratorFunc(func() string { return "sbfirst" }))

	_ = c.Set(bag, "display", "block", breakpoint.All)

	if gen.calls != 0 || bag.Key() != "sbfirst" {
		t.Errorf("key regenerated: calls=%d key=%q", gen.calls, bag.Key())
	}
}

func TestNewBag(t *testing.T) {
	a, b := NewBag(), NewBag()
	if a.Key() == "" || a.Key() == b.Key() {
		t.Errorf("NewBag keys = %q, %q", a.Key(), b.Key())
	}
	if len(a) != 1 {
		t.Errorf("NewBag() = %v, want only the key", a)
	}
}

func TestLocalStyles(t *testing.T) {
	ls := &LocalStyles{}

	if _, ok, err := GetLocal(ls, "display", breakpoint.XS); ok || err != nil {
		t.Errorf("GetLocal on empty styles = (%v, %v)", ok, err)
	}
	if ls.Instance != nil {
		t.Errorf("GetLocal created a bag: %v", ls.Instance)
	}
	if _, _, err := GetLocal(ls, "", breakpoint.XS); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetLocal with empty plugin error = %v", err)
	}

	if err := SetLocal(ls, "display", "block", breakpoint.SM); err != nil {
		t.Fatal(err)
	}
	if ls.Instance == nil || ls.Instance.Key() == "" {
		t.Fatalf("instance not created and keyed: %v", ls.Instance)
	}

	got, ok, err := GetLocal(ls, "display", breakpoint.SM)
	if err != nil || !ok || got != "block" {
		t.Errorf("GetLocal() = (%v, %v, %v)", got, ok, err)
	}

	// Same semantics as the bag entry points
	want, _, _ := Get(ls.Instance, "display", breakpoint.SM)
	if want != got {
		t.Errorf("GetLocal and Get disagree: %v vs %v", got, want)
	}

	if err := SetLocal(nil, "display", "block", breakpoint.SM); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetLocal(nil) error = %v", err)
	}
	if _, _, err := GetLocal(nil, "display", breakpoint.SM); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetLocal(nil) error = %v", err)
	}
}

func TestCascadeResolver(t *testing.T) {
	c := New(WithResolver(Cascade))
	bag := Bag{"size": map[string]any{"sm": "10px", "lg": "20px"}}

	tests := []struct {
		vp     breakpoint.Breakpoint
		want   any
		wantOK bool
	}{
		{breakpoint.XS, nil, false},
		{breakpoint.SM, "10px", true},
		{breakpoint.MD, "10px", true},
		{breakpoint.LG, "20px", true},
		{breakpoint.XL, "20px", true},
	}

	for _, tt := range tests {
		got, ok, err := c.Get(bag, "size", tt.vp)
		if err != nil || ok != tt.wantOK || got != tt.want {
			t.Errorf("Get(%s) = (%v, %v, %v), want (%v, %v)", tt.vp, got, ok, err, tt.want, tt.wantOK)
		}
	}
}
