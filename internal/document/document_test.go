package document

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/responsive"
)

func sampleDocument(t *testing.T) *Document {
	t.Helper()

	d := New()
	hero := d.Entity("hero")
	if err := responsive.SetLocal(hero, "display", "block", breakpoint.XS); err != nil {
		t.Fatal(err)
	}
	if err := responsive.SetLocal(hero, "display", "none", breakpoint.LG); err != nil {
		t.Fatal(err)
	}
	if err := responsive.SetLocal(hero, "background", map[string]any{"color": "#ff0000"}, breakpoint.All); err != nil {
		t.Fatal(err)
	}
	err := responsive.Style(d.Entity("cta")).Component("button").Variation("primary").Plugin("size").SetConfig("12px", breakpoint.MD)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDocument_RoundTrip(t *testing.T) {
	for _, ext := range []string{"toml", "json", "yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "styles."+ext)
			want := sampleDocument(t)

			if err := Save(path, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if !reflect.DeepEqual(got.IDs(), []string{"cta", "hero"}) {
				t.Fatalf("IDs() = %v", got.IDs())
			}

			hero, _ := got.Lookup("hero")
			if hero.Instance.Key() != want.Entities["hero"].Instance.Key() {
				t.Errorf("key not preserved: %q", hero.Instance.Key())
			}
			if v, ok, _ := responsive.GetLocal(hero, "display", breakpoint.LG); !ok || v != "none" {
				t.Errorf("display@lg = (%v, %v)", v, ok)
			}
			if v, ok, _ := responsive.GetLocal(hero, "background", breakpoint.XL); !ok || !reflect.DeepEqual(v, map[string]any{"color": "#ff0000"}) {
				t.Errorf("background@xl = (%v, %v)", v, ok)
			}

			cta, _ := got.Lookup("cta")
			v, ok, err := responsive.Style(cta).Component("button").Variation("primary").Plugin("size").GetConfig(breakpoint.MD)
			if err != nil || !ok || v != "12px" {
				t.Errorf("cta size@md = (%v, %v, %v)", v, ok, err)
			}

			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Errorf("temporary file left behind: %v", err)
			}
		})
	}
}

func TestUnmarshal_NestedMapsArePlain(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatJSON, FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Marshal(sampleDocument(t), f)
			if err != nil {
				t.Fatal(err)
			}
			d, err := Unmarshal("styles", data, f)
			if err != nil {
				t.Fatal(err)
			}

			hero, _ := d.Lookup("hero")
			if _, ok := hero.Instance["display"].(map[string]any); !ok {
				t.Errorf("display decoded as %T", hero.Instance["display"])
			}
			if !responsive.IsResponsive(hero.Instance["display"]) {
				t.Error("display not detected as responsive")
			}
			cta, _ := d.Lookup("cta")
			if _, ok := cta.Instance[responsive.ComponentsRoot].(map[string]any); !ok {
				t.Errorf("components decoded as %T", cta.Instance[responsive.ComponentsRoot])
			}
		})
	}
}

func TestUnmarshal_YAMLSetKeepsBreakpoints(t *testing.T) {
	src := `entities:
  hero:
    instance:
      key: sbhero
      display: {xs: block, lg: none}
`
	d, err := Unmarshal("styles.yaml", []byte(src), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	hero, _ := d.Lookup("hero")

	if v, ok, err := responsive.GetLocal(hero, "display", breakpoint.LG); err != nil || !ok || v != "none" {
		t.Errorf("display@lg = (%v, %v, %v)", v, ok, err)
	}

	if err := responsive.SetLocal(hero, "display", "inline", breakpoint.MD); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"xs": "block", "md": "inline", "lg": "none"}
	if !reflect.DeepEqual(hero.Instance["display"], want) {
		t.Errorf("display = %v, want %v", hero.Instance["display"], want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Entities) != 0 {
		t.Errorf("expected empty document, got %v", d.Entities)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if parseErr.Path != path || parseErr.Format != FormatJSON {
		t.Errorf("ParseError = %+v", parseErr)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"styles.toml", FormatTOML, false},
		{"a/b/styles.JSON", FormatJSON, false},
		{"styles.yml", FormatYAML, false},
		{"styles.yaml", FormatYAML, false},
		{"styles.ini", 0, true},
		{"styles", 0, true},
	}

	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFor(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestDocument_Optimize(t *testing.T) {
	d := New()
	ls := d.Entity("hero")
	_ = responsive.SetLocal(ls, "size", 1, breakpoint.XS)
	_ = responsive.SetLocal(ls, "size", 1, breakpoint.SM)
	_ = responsive.SetLocal(ls, "size", 2, breakpoint.MD)

	changed := d.Optimize()
	if !reflect.DeepEqual(changed, map[string][]string{"hero": {"size"}}) {
		t.Errorf("Optimize() = %v", changed)
	}
}

func TestDocument_Prune(t *testing.T) {
	d := New()
	d.Entity("empty")
	d.Entity("keyed").Instance = responsive.Bag{responsive.KeyField: "sbx"}
	_ = responsive.SetLocal(d.Entity("used"), "display", "block", breakpoint.All)

	if n := d.Prune(); n != 2 {
		t.Errorf("Prune() = %d, want 2", n)
	}
	if !reflect.DeepEqual(d.IDs(), []string{"used"}) {
		t.Errorf("IDs() after prune = %v", d.IDs())
	}
}
