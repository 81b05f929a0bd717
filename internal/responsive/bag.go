package responsive

import (
	"github.com/dshills/stylebag/internal/idgen"
	"github.com/dshills/stylebag/internal/objpath"
)

// KeyField is the bag field holding the bag's identity key.
const KeyField = "key"

// Bag holds every plugin configuration of one styleable entity.
type Bag map[string]any

// NewBag returns an empty bag with its identity key assigned.
func NewBag() Bag {
	return NewBagWithGenerator(idgen.NewRandom())
}

// NewBagWithGenerator returns an empty bag keyed by gen.
func NewBagWithGenerator(gen idgen.Generator) Bag {
	b := Bag{}
	b.EnsureKey(gen)
	return b
}

// Key returns the bag's identity key, or "" if it has none yet.
func (b Bag) Key() string {
	k, _ := b[KeyField].(string)
	return k
}

// EnsureKey assigns a key from gen if the bag has none and returns the key.
// An existing key is never replaced.
func (b Bag) EnsureKey(gen idgen.Generator) string {
	if k := b.Key(); k != "" {
		return k
	}
	k := gen.NewID()
	b[KeyField] = k
	return k
}

// Clone returns a deep copy of the bag.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	return Bag(objpath.CloneMap(b))
}

// LocalStyles wraps the bag of a styleable entity as the host stores it.
type LocalStyles struct {
	Instance Bag `json:"instance,omitempty" toml:"instance,omitempty" yaml:"instance,omitempty"`
}

// bag returns the instance bag, creating an empty one if absent.
func (ls *LocalStyles) bag() Bag {
	if ls.Instance == nil {
		ls.Instance = Bag{}
	}
	return ls.Instance
}

// undefined is the type of the Undefined sentinel.
type undefined struct{}

// Undefined marks a value that was never provided. Writing it is an error;
// write nil to clear a configuration.
var Undefined any = undefined{}

func isUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}
