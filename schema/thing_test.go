package schema

import "testing"

func TestFirstNonEmptyString(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		want   string
	}{
		{
			name:   "single value",
			values: []Value{{Str: "ABC-123"}},
			want:   "ABC-123",
		},
		{
			name:   "first empty second filled",
			values: []Value{{Str: ""}, {Str: "ABC-123"}},
			want:   "ABC-123",
		},
		{
			name:   "whitespace counts as empty",
			values: []Value{{Str: "   "}, {Str: "ABC-123"}},
			want:   "ABC-123",
		},
		{
			name:   "nested thing skipped",
			values: []Value{{Thing: NewThing(TypeBrand)}, {Str: "ABC-123"}},
			want:   "ABC-123",
		},
		{
			name:   "all empty",
			values: []Value{{Str: ""}, {Str: " "}},
			want:   "",
		},
		{
			name:   "value trimmed",
			values: []Value{{Str: "  ABC-123  "}},
			want:   "ABC-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thing := NewThing(TypeProduct)
			for _, v := range tt.values {
				thing.Add("sku", v)
			}
			got := thing.FirstNonEmptyString("sku")
			if got != tt.want {
				t.Errorf("FirstNonEmptyString(%q) = %q, want %q", "sku", got, tt.want)
			}
		})
	}
}

func TestFirstNonEmptyStringOf(t *testing.T) {
	thing := NewThing(TypeProduct)
	thing.AddString("gtin14", "")
	thing.AddString("gtin13", "4001234567890")
	thing.AddString("gtin8", "40012345")

	got := thing.FirstNonEmptyStringOf("gtin14", "gtin13", "gtin12", "gtin8")
	if got != "4001234567890" {
		t.Errorf("FirstNonEmptyStringOf() = %q, want %q", got, "4001234567890")
	}
}

func TestFirstNonEmptyStringOnNilThing(t *testing.T) {
	var thing *Thing
	if got := thing.FirstNonEmptyString("name"); got != "" {
		t.Errorf("FirstNonEmptyString() on nil = %q, want empty", got)
	}
}

func TestValuesPreserveOrder(t *testing.T) {
	thing := NewThing(TypeProduct)
	thing.AddString("image", "a.jpg")
	thing.AddString("image", "b.jpg")
	thing.AddString("image", "c.jpg")

	values := thing.Values("image")
	if len(values) != 3 {
		t.Fatalf("Values() returned %d values, want 3", len(values))
	}
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if values[i].Str != want {
			t.Errorf("Values()[%d] = %q, want %q", i, values[i].Str, want)
		}
	}
}

func TestNonEmptyStringsUnwrapsImageObject(t *testing.T) {
	imageObject := NewThing(TypeImageObject)
	imageObject.AddString("contentUrl", "https://example.com/photo.jpg")

	thing := NewThing(TypeProduct)
	thing.AddThing("image", imageObject)
	thing.AddString("image", "https://example.com/direct.jpg")

	got := thing.NonEmptyStrings("image")
	want := []string{"https://example.com/photo.jpg", "https://example.com/direct.jpg"}
	if len(got) != len(want) {
		t.Fatalf("NonEmptyStrings() returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NonEmptyStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveEntityName(t *testing.T) {
	organization := NewThing(TypeOrganization)
	organization.AddString("legalName", "ACME GmbH")

	brand := NewThing(TypeBrand)
	brand.AddString("name", "ACME")

	person := NewThing(TypePerson)
	person.AddString("givenName", "Max")
	person.AddString("familyName", "Mustermann")

	personNameOnly := NewThing(TypePerson)
	personNameOnly.AddString("name", "Max Mustermann")

	unknown := NewThing("Corporation")
	unknown.AddString("name", "Unknown Corp")

	tests := []struct {
		name   string
		values []Value
		want   string
	}{
		{
			name:   "plain string",
			values: []Value{{Str: "ACME"}},
			want:   "ACME",
		},
		{
			name:   "organization legal name",
			values: []Value{{Thing: organization}},
			want:   "ACME GmbH",
		},
		{
			name:   "brand name",
			values: []Value{{Thing: brand}},
			want:   "ACME",
		},
		{
			name:   "person given and family name",
			values: []Value{{Thing: person}},
			want:   "Max Mustermann",
		},
		{
			name:   "person name fallback",
			values: []Value{{Thing: personNameOnly}},
			want:   "Max Mustermann",
		},
		{
			name:   "unknown type falls back to name",
			values: []Value{{Thing: unknown}},
			want:   "Unknown Corp",
		},
		{
			name:   "empty first value skipped",
			values: []Value{{Str: ""}, {Str: "ACME"}},
			want:   "ACME",
		},
		{
			name:   "no values",
			values: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEntityName(tt.values)
			if got != tt.want {
				t.Errorf("ResolveEntityName() = %q, want %q", got, tt.want)
			}
		})
	}
}
