package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"littlecad.dev/internal/littletiles"
	"littlecad.dev/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	summarySchema := compile("summary.schema.json")
	errorSchema := compile("error.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "client_name":"bptool"
	}`), &hello)
	validate(helloSchema, hello)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "max_upload_bytes":8388608
	}`), &welcome)
	validate(welcomeSchema, welcome)

	// Build the SUMMARY sample from a real decode so the schema tracks
	// the Go types.
	bp, err := littletiles.ParseBlueprint(map[string]any{
		"boxes": int32(8), "tiles": int32(5),
		"min": []int32{0, 0, 3}, "size": []int32{5, 1, 5},
		"grid": int32(4),
		"c":    []any{},
		"s":    map[string]any{"id": "fixed"},
		"t": map[string]any{
			"minecraft:white_wool": []any{
				[]int32{-1},
				[]int32{3, 0, 7, 4, 1, 8},
			},
		},
	})
	if err != nil {
		t.Fatalf("ParseBlueprint: %v", err)
	}
	msg := protocol.SummaryMsg{
		Type:            protocol.TypeSummary,
		ProtocolVersion: protocol.Version,
		Digest:          strings.Repeat("ab", 32),
		Blueprint:       protocol.Summarize(bp),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	var summary any
	_ = json.Unmarshal(b, &summary)
	validate(summarySchema, summary)

	var errMsg any
	b, _ = json.Marshal(protocol.NewError(protocol.ErrBadBlueprint, "missing int field \"grid\""))
	_ = json.Unmarshal(b, &errMsg)
	validate(errorSchema, errMsg)
}
