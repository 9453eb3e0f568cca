package tools

import (
	"reflect"
	"testing"
)

func TestListOrder(t *testing.T) {
	list := List()
	if len(list) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(list))
	}
	if list[0].Name != ToolGetJoke || list[1].Name != ToolListSubtypes {
		t.Fatalf("unexpected order: %s, %s", list[0].Name, list[1].Name)
	}
}

func TestSchemaEnumMatchesSubtypes(t *testing.T) {
	tool, ok := Lookup(ToolGetJoke)
	if !ok {
		t.Fatal("get_italian_joke not registered")
	}
	props := tool.InputSchema["properties"].(map[string]interface{})
	subtype := props["subtype"].(map[string]interface{})
	enum := subtype["enum"].([]interface{})

	want := make([]interface{}, len(Subtypes))
	for i, s := range Subtypes {
		want[i] = s
	}
	if !reflect.DeepEqual(enum, want) {
		t.Fatalf("schema enum %v does not match Subtypes %v", enum, Subtypes)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("get_german_joke"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestValidSubtype(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"All", true},
		{"One-liner", true},
		{"Observational", true},
		{"Stereotype", true},
		{"Wordplay", true},
		{"Long", true},
		{"", false},
		{"all", false},
		{"Pun", false},
	}
	for _, tt := range tests {
		if got := ValidSubtype(tt.in); got != tt.want {
			t.Errorf("ValidSubtype(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
