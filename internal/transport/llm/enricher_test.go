package llm

import "testing"

func TestParseEnrichment_Valid(t *testing.T) {
	raw := `{
		"primary_category": "Brandable",
		"secondary_category": "Service-based",
		"descriptions": ["An AI branding platform.", "A naming agency."]
	}`

	enr, err := parseEnrichment(raw)
	if err != nil {
		t.Fatalf("parseEnrichment: %v", err)
	}
	if enr.PrimaryCategory != "Brandable" || enr.SecondaryCategory != "Service-based" {
		t.Errorf("categories: got %+v", enr)
	}
	if len(enr.Descriptions) != 2 {
		t.Errorf("descriptions: got %v", enr.Descriptions)
	}
}

func TestParseEnrichment_FencedJSON(t *testing.T) {
	raw := "```json\n{\"primary_category\": \"Brandable\", \"secondary_category\": \"Niche\", \"descriptions\": [\"x\"]}\n```"

	enr, err := parseEnrichment(raw)
	if err != nil {
		t.Fatalf("parseEnrichment: %v", err)
	}
	if enr.PrimaryCategory != "Brandable" {
		t.Errorf("categories: got %+v", enr)
	}
}

func TestParseEnrichment_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the domain is brandable"},
		{"unknown primary", `{"primary_category": "Startup", "secondary_category": "Niche", "descriptions": ["x"]}`},
		{"unknown secondary", `{"primary_category": "Brandable", "secondary_category": "Cool", "descriptions": ["x"]}`},
		{"identical categories", `{"primary_category": "Brandable", "secondary_category": "Brandable", "descriptions": ["x"]}`},
		{"no descriptions", `{"primary_category": "Brandable", "secondary_category": "Niche", "descriptions": []}`},
		{"too many descriptions", `{"primary_category": "Brandable", "secondary_category": "Niche", "descriptions": ["a", "b", "c"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseEnrichment(tt.raw); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.input); got != tt.want {
			t.Errorf("stripFences(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
