package realtime

import (
	"context"
	"reflect"
	"testing"

	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
)

type fakeSource struct {
	name, keyword string
}

func (f fakeSource) Name() string                         { return f.name }
func (f fakeSource) Keyword() string                      { return f.keyword }
func (f fakeSource) Question() string                     { return f.name + "? " }
func (f fakeSource) Fetch(context.Context, string) string { return f.name }

func TestRegistryMatchOrder(t *testing.T) {
	r := New(configpkg.DefaultConfig(), nil)

	tests := []struct {
		input string
		want  string
	}{
		{"What's the WEATHER like?", NameWeather},
		{"any news today?", NameNews},
		{"weather news", NameWeather},
		{"NewsFlash", NameNews},
	}
	for _, tt := range tests {
		src, ok := r.Match(tt.input)
		if !ok {
			t.Fatalf("expected %q to match %s", tt.input, tt.want)
		}
		if src.Name() != tt.want {
			t.Fatalf("input %q: expected %s, got %s", tt.input, tt.want, src.Name())
		}
	}

	if _, ok := r.Match("tell me a joke"); ok {
		t.Fatal("expected no match for plain input")
	}
}

func TestRegistryIgnoresDuplicates(t *testing.T) {
	r := NewRegistry(nil, false, fakeSource{"a", "x"}, fakeSource{"a", "y"}, fakeSource{"b", "z"})

	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if _, ok := r.Lookup("b"); !ok {
		t.Fatal("expected lookup of b to succeed")
	}
	if _, ok := r.Match("y"); ok {
		t.Fatal("duplicate source keyword should not be registered")
	}
}
