package query

import (
	"testing"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/keypath"
)

func sampleDoc() document.Document {
	doc := document.Document{}
	doc.Set(keypath.Parse("timestamp"), float64(1609459200))
	doc.Set(keypath.Parse("speed"), float64(45.2))
	doc.Set(keypath.Parse("driver.name"), "John Doe")
	doc.Set(keypath.Parse("driver.age"), float64(35))
	doc.Set(keypath.Parse("signal[0]"), float64(101))
	doc.Set(keypath.Parse("signal[1]"), float64(102))
	doc.Set(keypath.Parse("status"), "active")
	return doc
}

func TestFilterMatch(t *testing.T) {
	doc := sampleDoc()

	tests := []struct {
		name     string
		path     string
		operator string
		value    any
		expected bool
	}{
		{"equal number", "speed", "=", float64(45.2), true},
		{"not equal number", "speed", "!=", float64(50), true},
		{"greater than", "driver.age", ">", float64(30), true},
		{"greater than false", "driver.age", ">", float64(40), false},
		{"less or equal", "speed", "<=", float64(45.2), true},
		{"equal string", "driver.name", "=", "John Doe", true},
		{"contains", "driver.name", "contains", "John", true},
		{"contains false", "driver.name", "contains", "Jane", false},
		{"indexed path", "signal[0]", ">=", float64(100), true},
		{"missing path never matches", "driver.license", "=", "x", false},
		{"string compared to number", "status", "=", float64(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.path, tt.operator, tt.value)
			if got := f.Match(doc); got != tt.expected {
				t.Errorf("Match(%s %s %v) = %v, want %v", tt.path, tt.operator, tt.value, got, tt.expected)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	doc := sampleDoc()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"numeric comparison", "speed > 45", true},
		{"numeric comparison false", "speed > 50", false},
		{"quoted string", "driver.name = 'John Doe'", true},
		{"double quoted string", `driver.name = "John Doe"`, true},
		{"bare word value", "status = active", true},
		{"and both true", "speed > 45 AND driver.age = 35", true},
		{"and one false", "speed > 45 AND driver.age = 99", false},
		{"or rescues", "speed > 99 OR status = active", true},
		{"lowercase keywords", "speed > 45 and status = active", true},
		{"parentheses", "(speed > 99 OR driver.age = 35) AND status = active", true},
		{"contains", "driver.name CONTAINS 'Doe'", true},
		{"bracket index path", "signal[1] = 102", true},
		{"dotted index path", "signal.0 = 101", true},
		{"pre-normalized path", "/driver/age >= 35", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseFilter(tt.input)
			if err != nil {
				t.Fatalf("ParseFilter(%q) failed: %v", tt.input, err)
			}
			if got := expr.Evaluate(doc); got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFilterErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"speed >",
		"AND speed > 1",
		"(speed > 1",
	}

	for _, input := range inputs {
		if _, err := ParseFilter(input); err == nil {
			t.Errorf("ParseFilter(%q) should fail", input)
		}
	}
}
