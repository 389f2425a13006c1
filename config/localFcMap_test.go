package config

import "testing"

func TestLoadLocalFCMap_Default(t *testing.T) {
	mapping, err := loadLocalFCMap("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 4 {
		t.Fatalf("expected 4 receive centres, got %d", len(mapping))
	}
	centers := mapping["DED3"]
	if len(centers) != 3 || centers[0] != "DEL4" {
		t.Fatalf("unexpected DED3 mapping: %v", centers)
	}
}

func TestLoadLocalFCMap_EnvOverride(t *testing.T) {
	mapping, err := loadLocalFCMap(`{"AAA1": ["BBB1", "BBB2"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 1 || len(mapping["AAA1"]) != 2 {
		t.Fatalf("override not applied: %v", mapping)
	}
}

func TestLoadLocalFCMap_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"AAA1": `},
		{"empty mapping", `{}`},
		{"empty member list", `{"AAA1": []}`},
	}
	for _, tc := range cases {
		if _, err := loadLocalFCMap(tc.raw); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
