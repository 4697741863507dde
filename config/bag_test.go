package config

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestBagJSONPreservesOrder(t *testing.T) {
	var b Bag
	if err := json.Unmarshal([]byte(`{"zebra":1,"alpha":true,"mid":"x"}`), &b); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"zebra", "alpha", "mid"}
	if len(b) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(b))
	}
	for i, key := range want {
		if b[i].Key != key {
			t.Errorf("entry %d: expected key %q, got %q", i, key, b[i].Key)
		}
	}
}

func TestBagJSONRoundTrip(t *testing.T) {
	in := `{"zebra":1,"alpha":true,"mid":"x"}`
	var b Bag
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != in {
		t.Errorf("expected %s, got %s", in, out)
	}
}

func TestBagJSONRejectsNonObject(t *testing.T) {
	var b Bag
	if err := json.Unmarshal([]byte(`[1,2]`), &b); err == nil {
		t.Fatal("expected error for non-object behavior")
	}
}

func TestBagYAMLPreservesOrder(t *testing.T) {
	var b Bag
	src := "zebra: 1\nalpha: true\nmid: x\n"
	if err := yaml.Unmarshal([]byte(src), &b); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"zebra", "alpha", "mid"}
	if len(b) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(b))
	}
	for i, key := range want {
		if b[i].Key != key {
			t.Errorf("entry %d: expected key %q, got %q", i, key, b[i].Key)
		}
	}
}

func TestBagSetAndGet(t *testing.T) {
	var b Bag
	b.Set("first", 1)
	b.Set("second", "two")
	b.Set("first", 10)

	if len(b) != 2 {
		t.Fatalf("expected 2 entries after overwrite, got %d", len(b))
	}
	if v, ok := b.Get("first"); !ok || v != 10 {
		t.Errorf("expected first=10, got %v (found=%v)", v, ok)
	}
	if _, ok := b.Get("missing"); ok {
		t.Error("expected missing key to report not found")
	}
}
