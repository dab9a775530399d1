package oasgen_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oasbuild/oasgen"
)

// normalize marshals v to JSON and unmarshals back into interface{} to
// remove map-type and number-width differences.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func mustEqual(t *testing.T, got, want any) {
	t.Helper()
	if diff := cmp.Diff(normalize(want), normalize(got)); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Determinism(t *testing.T) {
	n := oasgen.Object().
		Field("id", oasgen.String().UUID()).
		Field("tags", oasgen.Array(oasgen.Union(oasgen.String(), oasgen.Number())))

	first := oasgen.Generate(n, oasgen.ModeInput)
	for i := 0; i < 3; i++ {
		mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), first)
	}
}

func TestGenerate_String_Constraints(t *testing.T) {
	n := oasgen.String().Email().Min(1).Max(5).Max(3).Regex("^[a-z]+$")
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), map[string]any{
		"type":      "string",
		"format":    "email",
		"minLength": 1,
		"maxLength": 3,
		"regex":     "^[a-z]+$",
	})
}

func TestGenerate_String_FormatLastWins(t *testing.T) {
	n := oasgen.String().Email().UUID().URL()
	got := oasgen.Generate(n, oasgen.ModeInput)
	if got["format"] != "uri" {
		t.Fatalf("expected last format to win, got %v", got["format"])
	}
}

func TestGenerate_Number_Bounds(t *testing.T) {
	cases := []struct {
		name string
		node *oasgen.NumberNode
		want map[string]any
	}{
		{"inclusive max", oasgen.Number().Max(10), map[string]any{"type": "number", "maximum": 10}},
		{"exclusive max", oasgen.Number().Lt(10), map[string]any{"type": "number", "maximum": 9}},
		{"inclusive min", oasgen.Number().Min(2), map[string]any{"type": "number", "minimum": 2}},
		{"exclusive min", oasgen.Number().Gt(2), map[string]any{"type": "number", "minimum": 3}},
		{"integer", oasgen.Number().Int().Min(0), map[string]any{"type": "integer", "minimum": 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mustEqual(t, oasgen.Generate(tc.node, oasgen.ModeInput), tc.want)
		})
	}
}

func TestGenerate_ConstantKinds(t *testing.T) {
	mustEqual(t, oasgen.Generate(oasgen.Bool(), oasgen.ModeInput),
		map[string]any{"type": "boolean"})
	mustEqual(t, oasgen.Generate(oasgen.BigInt(), oasgen.ModeInput),
		map[string]any{"type": "integer", "format": "int64"})
	mustEqual(t, oasgen.Generate(oasgen.Date(), oasgen.ModeInput),
		map[string]any{"type": "string", "format": "date-time"})
	// The null kind deliberately renders as a nullable string.
	mustEqual(t, oasgen.Generate(oasgen.Null(), oasgen.ModeInput),
		map[string]any{"type": "string", "format": "null", "nullable": true})
}

func TestGenerate_Object_RequiredExclusion(t *testing.T) {
	n := oasgen.Object().
		Field("a", oasgen.String()).
		Field("b", oasgen.Optional(oasgen.String())).
		Field("c", oasgen.Never())

	got := oasgen.Generate(n, oasgen.ModeInput)
	mustEqual(t, got, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "string"},
			"b": map[string]any{"type": "string"},
			"c": map[string]any{"readOnly": true},
		},
		"required": []any{"a"},
	})
}

func TestGenerate_Object_AllOptionalKeepsEmptyRequired(t *testing.T) {
	n := oasgen.Object().
		Field("a", oasgen.Optional(oasgen.String())).
		Field("b", oasgen.Optional(oasgen.Number()))

	b, err := json.Marshal(oasgen.Generate(n, oasgen.ModeInput))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"required":[]`) {
		t.Fatalf("required must stay an empty list, got:\n%s", b)
	}
}

func TestGenerate_Record_AsObject(t *testing.T) {
	n := oasgen.Record().Field("count", oasgen.Number().Int())
	got := oasgen.Generate(n, oasgen.ModeInput)
	if got["type"] != "object" {
		t.Fatalf("record must generate as object, got %v", got["type"])
	}
	mustEqual(t, got, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "integer"},
		},
		"required": []any{"count"},
	})
}

func TestGenerate_ArrayOfUnion(t *testing.T) {
	n := oasgen.Array(oasgen.Union(oasgen.String(), oasgen.Number()))
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), map[string]any{
		"type": "array",
		"items": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{"type": "number"},
			},
		},
	})
}

func TestGenerate_Intersection(t *testing.T) {
	left := oasgen.Object().Field("id", oasgen.String())
	right := oasgen.Object().Field("age", oasgen.Number().Int())
	got := oasgen.Generate(oasgen.Intersection(left, right), oasgen.ModeInput)

	allOf, ok := got["allOf"].([]oasgen.Fragment)
	if !ok || len(allOf) != 2 {
		t.Fatalf("expected two allOf operands, got %v", got["allOf"])
	}
	if allOf[0]["type"] != "object" || allOf[1]["type"] != "object" {
		t.Fatalf("operands not generated recursively: %v", allOf)
	}
}

func TestGenerate_Literal(t *testing.T) {
	mustEqual(t, oasgen.Generate(oasgen.Literal("draft"), oasgen.ModeInput),
		map[string]any{"type": "string", "enum": []any{"draft"}})
	mustEqual(t, oasgen.Generate(oasgen.Literal(42), oasgen.ModeInput),
		map[string]any{"type": "number", "enum": []any{42}})
	mustEqual(t, oasgen.Generate(oasgen.Literal(true), oasgen.ModeInput),
		map[string]any{"type": "boolean", "enum": []any{true}})
}

func TestGenerate_Enum(t *testing.T) {
	mustEqual(t, oasgen.Generate(oasgen.Enum("red", "green", "blue"), oasgen.ModeInput),
		map[string]any{"type": "string", "enum": []any{"red", "green", "blue"}})
	mustEqual(t, oasgen.Generate(oasgen.NativeEnum(1, 2, 3), oasgen.ModeInput),
		map[string]any{"type": "number", "enum": []any{1, 2, 3}})
}

func TestGenerate_Enum_EmptyDoesNotCrash(t *testing.T) {
	got := oasgen.Generate(oasgen.Enum(), oasgen.ModeInput)
	if _, ok := got["type"]; ok {
		t.Fatalf("empty enum must not guess a type: %v", got)
	}
}

func TestGenerate_NullabilityInjection(t *testing.T) {
	got := oasgen.Generate(oasgen.Nullable(oasgen.String()), oasgen.ModeInput)
	mustEqual(t, got, map[string]any{"type": "string", "nullable": true})

	// An explicit override outranks the injected marker.
	n := oasgen.Extend(oasgen.Nullable(oasgen.String()), oasgen.Fragment{"nullable": false})
	got = oasgen.Generate(n, oasgen.ModeInput)
	if got["nullable"] != false {
		t.Fatalf("override must win over injected nullable: %v", got)
	}
}

func TestGenerate_OptionalForwardsToInner(t *testing.T) {
	n := oasgen.Optional(oasgen.String().Max(3))
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput),
		map[string]any{"type": "string", "maxLength": 3})
}

func TestGenerate_UnionOfNullBranchIsNullable(t *testing.T) {
	n := oasgen.Union(oasgen.String(), oasgen.Null())
	got := oasgen.Generate(n, oasgen.ModeInput)
	if got["nullable"] != true {
		t.Fatalf("union with null branch must be nullable: %v", got)
	}
}

func TestGenerate_UnknownKindDegradation(t *testing.T) {
	n := oasgen.Extend(oasgen.Any(), oasgen.Fragment{"foo": "bar"})
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), map[string]any{"foo": "bar"})

	mustEqual(t, oasgen.Generate(oasgen.Unknown(), oasgen.ModeOutput), map[string]any{})
}

func TestGenerate_ExtendPrecedence(t *testing.T) {
	n := oasgen.Extend(oasgen.String().Max(5),
		oasgen.Fragment{"maxLength": 10, "description": "name"},
		oasgen.Fragment{"description": "display name"},
	)
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), map[string]any{
		"type":        "string",
		"maxLength":   10,
		"description": "display name",
	})
}

func TestGenerate_TransformProbe(t *testing.T) {
	n := oasgen.Transform(oasgen.String(), func(v any) any {
		return len(v.(string))
	})

	// Input mode describes the declared shape.
	mustEqual(t, oasgen.Generate(n, oasgen.ModeInput), map[string]any{"type": "string"})
	// Output mode probes the transform with "" and observes a number.
	mustEqual(t, oasgen.Generate(n, oasgen.ModeOutput), map[string]any{"type": "number"})
}

func TestGenerate_TransformLastWins(t *testing.T) {
	n := oasgen.Transform(oasgen.String(), func(v any) any { return 1 }).
		Transform(func(v any) any { return v != nil })

	got := oasgen.Generate(n, oasgen.ModeOutput)
	if got["type"] != "boolean" {
		t.Fatalf("expected last transform to drive the type, got %v", got["type"])
	}
}

func TestGenerate_TransformPanicIsInconclusive(t *testing.T) {
	n := oasgen.Transform(oasgen.String(), func(v any) any {
		panic("boom")
	})
	got := oasgen.Generate(n, oasgen.ModeOutput)
	if got["type"] != "string" {
		t.Fatalf("failed probe must leave the declared type, got %v", got["type"])
	}
}

func TestGenerate_RefineDoesNotProbe(t *testing.T) {
	called := false
	n := &oasgen.EffectNode{
		Inner: oasgen.String(),
		Effects: []oasgen.Effect{{
			Code:  oasgen.EffectRefine,
			Check: func(v any) bool { called = true; return true },
		}},
	}
	got := oasgen.Generate(n, oasgen.ModeOutput)
	if called {
		t.Fatalf("refine effects must not be invoked")
	}
	if got["type"] != "string" {
		t.Fatalf("refine must keep the inner type, got %v", got["type"])
	}
}

func TestGenerate_TransformOfObjectKeepsInheritedType(t *testing.T) {
	n := oasgen.Transform(oasgen.Object().Field("a", oasgen.String()), func(v any) any {
		return map[string]any{"wrapped": v}
	})
	got := oasgen.Generate(n, oasgen.ModeOutput)
	if got["type"] != "object" {
		t.Fatalf("non-primitive probe result must not replace the type, got %v", got["type"])
	}
}

func TestGenerate_NilNode(t *testing.T) {
	if got := oasgen.Generate(nil, oasgen.ModeInput); len(got) != 0 {
		t.Fatalf("nil node must yield an empty fragment, got %v", got)
	}
}

func TestGenerate_DoesNotMutateNode(t *testing.T) {
	n := oasgen.Extend(oasgen.String().Max(3), oasgen.Fragment{"title": "t"})
	before := len(n.Overrides())
	checks := append([]oasgen.StringCheck(nil), n.Checks...)

	_ = oasgen.Generate(n, oasgen.ModeOutput)
	_ = oasgen.Generate(n, oasgen.ModeOutput)

	if len(n.Overrides()) != before {
		t.Fatalf("generation must not grow overrides: %d -> %d", before, len(n.Overrides()))
	}
	if !reflect.DeepEqual(checks, n.Checks) {
		t.Fatalf("generation must not touch checks: %v", n.Checks)
	}
}

func TestKind_String(t *testing.T) {
	if got := oasgen.KindIntersection.String(); got != "intersection" {
		t.Fatalf("unexpected kind name %q", got)
	}
	if got := oasgen.Kind(999).String(); got != "unsupported" {
		t.Fatalf("out-of-range kinds must read as unsupported, got %q", got)
	}
}

func TestGenerate_DeepTreeEndToEnd(t *testing.T) {
	address := oasgen.Object().
		Field("street", oasgen.String().Min(1)).
		Field("zip", oasgen.String().Regex(`^\d{5}$`))
	user := oasgen.Extend(oasgen.Object().
		Field("id", oasgen.String().UUID()).
		Field("email", oasgen.String().Email()).
		Field("age", oasgen.Optional(oasgen.Number().Int().Min(0).Lt(150))).
		Field("addresses", oasgen.Array(address)).
		Field("role", oasgen.Enum("admin", "member")),
		oasgen.Fragment{"description": "account record"},
	)

	b, err := json.Marshal(oasgen.Generate(user, oasgen.ModeInput))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"description":"account record"`,
		`"format":"uuid"`,
		`"format":"email"`,
		`"maximum":149`,
		`"required":["street","zip"]`,
		`"enum":["admin","member"]`,
	} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("generated document missing %s:\n%s", want, b)
		}
	}
}
