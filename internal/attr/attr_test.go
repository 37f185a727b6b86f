package attr_test

import (
	"reflect"
	"testing"

	"revive/internal/attr"
	"revive/internal/domain"
)

var bookFields = []domain.FieldDef{
	{Key: "author", Label: "Author", Required: true},
	{Key: "publisher", Label: "Publisher"},
}

func TestEncodeCollectsMissingRequired(t *testing.T) {
	attrs, missing := attr.Encode(bookFields, map[string]string{"author": "  ", "publisher": "Penguin"})
	if len(missing) != 1 || missing[0] != "Author" {
		t.Fatalf("want missing=[Author], got %v", missing)
	}
	// Every field keeps an entry, empty or not, so the form can round-trip.
	want := map[string]string{"author": "", "publisher": "Penguin"}
	if !reflect.DeepEqual(attrs, want) {
		t.Fatalf("want %v, got %v", want, attrs)
	}
}

func TestEncodeTrims(t *testing.T) {
	attrs, missing := attr.Encode(bookFields, map[string]string{"author": " Kafka "})
	if len(missing) != 0 {
		t.Fatalf("unexpected missing: %v", missing)
	}
	if attrs["author"] != "Kafka" {
		t.Fatalf("want trimmed value, got %q", attrs["author"])
	}
}

func TestMarshalDecodeRoundTrip(t *testing.T) {
	m := map[string]string{"author": "Kafka", "publisher": ""}
	got := attr.Decode(attr.Marshal(m))
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip: want %v, got %v", m, got)
	}
}

func TestDecodeGraceful(t *testing.T) {
	for _, in := range []string{"", "   ", "not json", "[1,2,3]", `"string"`, "null"} {
		got := attr.Decode(in)
		if got == nil || len(got) != 0 {
			t.Fatalf("Decode(%q): want empty map, got %v", in, got)
		}
	}
}

func TestRenderUsesCurrentLabels(t *testing.T) {
	s := attr.Marshal(map[string]string{"author": "Kafka", "publisher": "Penguin"})
	got := attr.Render(bookFields, s)
	if got != "Author: Kafka · Publisher: Penguin" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderFallsBackToRawKey(t *testing.T) {
	// Schema changed after the item was created: "publisher" is gone.
	s := attr.Marshal(map[string]string{"publisher": "Penguin"})
	got := attr.Render([]domain.FieldDef{{Key: "author", Label: "Author", Required: true}}, s)
	if got != "publisher: Penguin" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := attr.Render(bookFields, attr.Marshal(map[string]string{"author": ""})); got != "" {
		t.Fatalf("want empty output, got %q", got)
	}
	if got := attr.Render(bookFields, ""); got != "" {
		t.Fatalf("want empty output, got %q", got)
	}
}
