package document

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/bisegni/replay/pkg/keypath"
)

func TestSetNested(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("driver.name"), "John Doe")
	doc.Set(keypath.Parse("driver.age"), float64(35))
	doc.Set(keypath.Parse("speed"), float64(45.2))

	driver, ok := doc["driver"].(map[string]any)
	if !ok {
		t.Fatalf("expected driver to be an object, got %T", doc["driver"])
	}
	if driver["name"] != "John Doe" {
		t.Errorf("driver.name = %v, want John Doe", driver["name"])
	}
	if driver["age"] != float64(35) {
		t.Errorf("driver.age = %v, want 35", driver["age"])
	}
	if doc["speed"] != float64(45.2) {
		t.Errorf("speed = %v, want 45.2", doc["speed"])
	}
}

func TestSetSequenceAutoExtend(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("signal[2]"), float64(103))

	seq, ok := doc["signal"].([]any)
	if !ok {
		t.Fatalf("expected signal to be a sequence, got %T", doc["signal"])
	}
	want := []any{nil, nil, float64(103)}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("signal = %v, want %v", seq, want)
	}
}

func TestSetDeepMixed(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("matrix.0.x"), float64(1))
	doc.Set(keypath.Parse("matrix.0.y"), float64(2))
	doc.Set(keypath.Parse("matrix.1.x"), float64(3))

	seq, ok := doc["matrix"].([]any)
	if !ok {
		t.Fatalf("expected matrix to be a sequence, got %T", doc["matrix"])
	}
	if len(seq) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(seq))
	}
	first, ok := seq[0].(map[string]any)
	if !ok {
		t.Fatalf("expected matrix.0 to be an object, got %T", seq[0])
	}
	if first["x"] != float64(1) || first["y"] != float64(2) {
		t.Errorf("matrix.0 = %v", first)
	}
}

func TestSetIndexAtRootKeysObject(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("0"), "first")

	if doc["0"] != "first" {
		t.Errorf("expected root key \"0\", got %v", doc)
	}
}

func TestSetLastWriteWins(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("a.b"), "one")
	doc.Set(keypath.Parse("a.b"), "two")

	got, ok := doc.Get(keypath.Parse("a.b"))
	if !ok || got != "two" {
		t.Errorf("a.b = %v, want two", got)
	}
}

func TestGet(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("acceleration.x"), float64(2.5))
	doc.Set(keypath.Parse("signal[1]"), float64(102))

	tests := []struct {
		name     string
		path     string
		expected any
		found    bool
	}{
		{"nested leaf", "acceleration.x", float64(2.5), true},
		{"sequence element", "signal.1", float64(102), true},
		{"gap element is nil", "signal.0", nil, true},
		{"missing key", "acceleration.z", nil, false},
		{"index out of range", "signal.5", nil, false},
		{"name segment into sequence", "signal.x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := doc.Get(keypath.Parse(tt.path))
			if ok != tt.found {
				t.Fatalf("Get(%q) found = %v, want %v", tt.path, ok, tt.found)
			}
			if ok && got != tt.expected {
				t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestOrderedMarshal(t *testing.T) {
	doc := Document{}
	doc.Set(keypath.Parse("speed"), float64(45.2))
	doc.Set(keypath.Parse("timestamp"), float64(1609459200))
	doc.Set(keypath.Parse("driver.name"), "Alice")

	headers := []keypath.Path{
		keypath.Parse("timestamp"),
		keypath.Parse("speed"),
		keypath.Parse("driver.name"),
	}

	om := Ordered(doc, headers)
	data, err := json.Marshal(om)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"timestamp":1609459200,"speed":45.2,"driver":{"name":"Alice"}}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestOrderedCoversUnlistedKeys(t *testing.T) {
	doc := Document{"b": "two", "a": "one"}
	om := Ordered(doc, nil)

	if len(om) != 2 || om[0].Key != "a" || om[1].Key != "b" {
		t.Errorf("unexpected order: %v", om)
	}
}
