package oasgen

import (
	"log/slog"

	"github.com/oasbuild/oasgen/internal/probe"
)

// Mode selects which side of a transforming schema Generate describes.
type Mode int

const (
	// ModeInput describes the value a writer supplies, before transforms.
	ModeInput Mode = iota
	// ModeOutput describes the value a reader sees, after transforms.
	ModeOutput
)

var logger = slog.Default()

// SetLogger replaces the logger used for non-fatal generation diagnostics.
// Passing nil keeps the current logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

type parser func(n Node, overrides []Fragment, mode Mode) Fragment

// parsers maps a node kind to its fragment parser. Supporting a new kind
// means adding one entry here; kinds without an entry degrade to their
// overrides alone.
var parsers map[Kind]parser

func init() {
	parsers = map[Kind]parser{
		KindString:       parseString,
		KindNumber:       parseNumber,
		KindBoolean:      parseBoolean,
		KindBigInt:       parseBigInt,
		KindDate:         parseDate,
		KindNull:         parseNull,
		KindObject:       parseObject,
		KindRecord:       parseObject,
		KindArray:        parseArray,
		KindUnion:        parseUnion,
		KindIntersection: parseIntersection,
		KindLiteral:      parseLiteral,
		KindEnum:         parseEnum,
		KindNativeEnum:   parseEnum,
		KindOptional:     parseWrapper,
		KindNullable:     parseWrapper,
		KindEffect:       parseEffect,
		KindNever:        parseNever,
		KindUnsupported:  parseCatchAll,
	}
}

// Generate walks the validator tree rooted at n and returns its schema
// fragment. It is total: unknown kinds and parser failures degrade to a
// fragment merged from the node's overrides alone, and the input tree is
// never mutated. Recursion is bounded by tree depth; cyclic trees are not
// supported.
func Generate(n Node, mode Mode) (frag Fragment) {
	if n == nil {
		return Fragment{}
	}
	var overrides []Fragment
	if n.Nullable() {
		overrides = append(overrides, Fragment{"nullable": true})
	}
	overrides = append(overrides, n.Overrides()...)

	p, ok := parsers[n.Kind()]
	if !ok {
		return Merge(Fragment{}, overrides...)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("oasgen: generation degraded to pass-through",
				slog.String("kind", n.Kind().String()),
				slog.Any("cause", r))
			frag = Merge(Fragment{}, overrides...)
		}
	}()
	return p(n, overrides, mode)
}

func parseString(n Node, overrides []Fragment, _ Mode) Fragment {
	frag := Fragment{"type": "string"}
	for _, c := range n.(*StringNode).Checks {
		switch c.Code {
		case CheckEmail:
			frag["format"] = "email"
		case CheckUUID:
			frag["format"] = "uuid"
		case CheckURL:
			frag["format"] = "uri"
		case CheckMax:
			frag["maxLength"] = c.Length
		case CheckMin:
			frag["minLength"] = c.Length
		case CheckRegex:
			frag["regex"] = c.Pattern
		}
	}
	return Merge(frag, overrides...)
}

func parseNumber(n Node, overrides []Fragment, _ Mode) Fragment {
	frag := Fragment{"type": "number"}
	for _, c := range n.(*NumberNode).Checks {
		switch c.Code {
		case CheckMax:
			// Exclusive bounds tighten by one rather than emitting an
			// exclusive-bound flag; integer semantics assumed.
			if c.Inclusive {
				frag["maximum"] = c.Value
			} else {
				frag["maximum"] = c.Value - 1
			}
		case CheckMin:
			if c.Inclusive {
				frag["minimum"] = c.Value
			} else {
				frag["minimum"] = c.Value + 1
			}
		case CheckInt:
			frag["type"] = "integer"
		}
	}
	return Merge(frag, overrides...)
}

func parseBoolean(_ Node, overrides []Fragment, _ Mode) Fragment {
	return Merge(Fragment{"type": "boolean"}, overrides...)
}

func parseBigInt(_ Node, overrides []Fragment, _ Mode) Fragment {
	return Merge(Fragment{"type": "integer", "format": "int64"}, overrides...)
}

func parseDate(_ Node, overrides []Fragment, _ Mode) Fragment {
	return Merge(Fragment{"type": "string", "format": "date-time"}, overrides...)
}

func parseNull(_ Node, overrides []Fragment, _ Mode) Fragment {
	// Emitted as a nullable string, not a dedicated null type; downstream
	// consumers depend on this shape.
	return Merge(Fragment{"type": "string", "format": "null", "nullable": true}, overrides...)
}

func parseObject(n Node, overrides []Fragment, mode Mode) Fragment {
	var fields []Field
	switch t := n.(type) {
	case *ObjectNode:
		fields = t.Fields
	case *RecordNode:
		fields = t.Fields
	}
	properties := Fragment{}
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		properties[f.Name] = Generate(f.Node, mode)
		if f.Node != nil && !f.Node.Optional() && f.Node.Kind() != KindNever {
			required = append(required, f.Name)
		}
	}
	return Merge(Fragment{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}, overrides...)
}

func parseArray(n Node, overrides []Fragment, mode Mode) Fragment {
	return Merge(Fragment{
		"type":  "array",
		"items": Generate(n.(*ArrayNode).Elem, mode),
	}, overrides...)
}

func parseUnion(n Node, overrides []Fragment, mode Mode) Fragment {
	u := n.(*UnionNode)
	branches := make([]Fragment, 0, len(u.Branches))
	for _, b := range u.Branches {
		branches = append(branches, Generate(b, mode))
	}
	return Merge(Fragment{"oneOf": branches}, overrides...)
}

func parseIntersection(n Node, overrides []Fragment, mode Mode) Fragment {
	i := n.(*IntersectionNode)
	return Merge(Fragment{
		"allOf": []Fragment{Generate(i.Left, mode), Generate(i.Right, mode)},
	}, overrides...)
}

func parseLiteral(n Node, overrides []Fragment, _ Mode) Fragment {
	v := n.(*LiteralNode).Value
	frag := Fragment{"enum": []any{v}}
	if t := typeOf(v); t != "" {
		frag["type"] = t
	}
	return Merge(frag, overrides...)
}

func parseEnum(n Node, overrides []Fragment, _ Mode) Fragment {
	var values []any
	switch t := n.(type) {
	case *EnumNode:
		values = t.Values
	case *NativeEnumNode:
		values = t.Values
	}
	frag := Fragment{"enum": append(make([]any, 0, len(values)), values...)}
	if len(values) > 0 {
		if t := typeOf(values[0]); t != "" {
			frag["type"] = t
		}
	}
	return Merge(frag, overrides...)
}

// parseWrapper serves optional and nullable nodes: recurse into the wrapped
// node and merge overrides on top. The nullable marker itself is injected
// upstream by Generate for any node whose nullability predicate holds.
func parseWrapper(n Node, overrides []Fragment, mode Mode) Fragment {
	var inner Node
	switch t := n.(type) {
	case *OptionalNode:
		inner = t.Inner
	case *NullableNode:
		inner = t.Inner
	}
	return Merge(Generate(inner, mode), overrides...)
}

func parseNever(_ Node, overrides []Fragment, _ Mode) Fragment {
	return Merge(Fragment{"readOnly": true}, overrides...)
}

// parseEffect describes the declared input shape and, in output mode,
// refines the type by probing the last declared transform with a canonical
// sample of the input type. Only a primitive probe result replaces the type.
func parseEffect(n Node, overrides []Fragment, mode Mode) Fragment {
	e := n.(*EffectNode)
	frag := Generate(e.Inner, mode)
	if mode == ModeOutput {
		var fn func(any) any
		for _, ef := range e.Effects {
			if ef.Code == EffectTransform && ef.Transform != nil {
				fn = ef.Transform
			}
		}
		if fn != nil {
			in, _ := frag["type"].(string)
			if out, ok := probe.Invoke(fn, probe.Sample(in)); ok {
				switch t := typeOf(out); t {
				case "number", "string", "boolean", "null":
					frag = Merge(frag, Fragment{"type": t})
				}
			}
		}
	}
	return Merge(frag, overrides...)
}

// parseCatchAll ignores the node entirely; only its overrides survive.
func parseCatchAll(_ Node, overrides []Fragment, _ Mode) Fragment {
	return Merge(Fragment{}, overrides...)
}
