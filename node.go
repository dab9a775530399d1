package oasgen

// Kind identifies a validator node variant.
type Kind int

const (
	// KindUnsupported is the residual bucket for node kinds without a
	// structural schema mapping (tuple, map, function, lazy, promise, any,
	// unknown, void, undefined). The generator reduces such nodes to their
	// override fragments.
	KindUnsupported Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindDate
	KindNull
	KindObject
	KindRecord
	KindArray
	KindUnion
	KindIntersection
	KindLiteral
	KindEnum
	KindNativeEnum
	KindOptional
	KindNullable
	KindEffect
	KindNever
)

var kindNames = map[Kind]string{
	KindUnsupported:  "unsupported",
	KindString:       "string",
	KindNumber:       "number",
	KindBoolean:      "boolean",
	KindBigInt:       "bigint",
	KindDate:         "date",
	KindNull:         "null",
	KindObject:       "object",
	KindRecord:       "record",
	KindArray:        "array",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindLiteral:      "literal",
	KindEnum:         "enum",
	KindNativeEnum:   "nativeEnum",
	KindOptional:     "optional",
	KindNullable:     "nullable",
	KindEffect:       "effect",
	KindNever:        "never",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unsupported"
}

// Node is a single rule of a validator tree. Concrete nodes embed Meta and
// are built through the package constructors; the tree is handed to Generate
// transiently and never mutated by it.
type Node interface {
	Kind() Kind
	// Nullable reports whether the described value may be JSON null.
	Nullable() bool
	// Optional reports whether the described value may be absent from its
	// enclosing object.
	Optional() bool
	// Overrides returns the fragments attached via Extend, in attachment order.
	Overrides() []Fragment

	appendOverrides(overrides ...Fragment)
}

// Meta carries the out-of-band override annotations attached via Extend.
// Every concrete node embeds it; construction never requires it to be set.
type Meta struct {
	overrides []Fragment
}

func (m *Meta) Nullable() bool        { return false }
func (m *Meta) Optional() bool        { return false }
func (m *Meta) Overrides() []Fragment { return m.overrides }

func (m *Meta) appendOverrides(overrides ...Fragment) {
	m.overrides = append(m.overrides, overrides...)
}

// Constraint codes recorded on string and number nodes. The parsers walk the
// declared list in order and apply the last matching code per concern;
// unrecognized codes are ignored.
const (
	CheckMin   = "min"
	CheckMax   = "max"
	CheckEmail = "email"
	CheckUUID  = "uuid"
	CheckURL   = "url"
	CheckRegex = "regex"
	CheckInt   = "int"
)

// StringCheck is one declared string constraint.
type StringCheck struct {
	Code    string
	Length  int    // CheckMin / CheckMax
	Pattern string // CheckRegex
}

// NumberCheck is one declared numeric constraint. Exclusive bounds are
// tightened by one when emitted; integer semantics are assumed.
type NumberCheck struct {
	Code      string
	Value     float64
	Inclusive bool
}

// ---- scalar nodes ----

// StringNode describes a string with an ordered constraint list.
type StringNode struct {
	Meta
	Checks []StringCheck
}

func String() *StringNode      { return &StringNode{} }
func (*StringNode) Kind() Kind { return KindString }

// Min requires a minimum length.
func (s *StringNode) Min(n int) *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckMin, Length: n})
	return s
}

// Max requires a maximum length.
func (s *StringNode) Max(n int) *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckMax, Length: n})
	return s
}

// Email marks the string as an email address.
func (s *StringNode) Email() *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckEmail})
	return s
}

// UUID marks the string as a UUID.
func (s *StringNode) UUID() *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckUUID})
	return s
}

// URL marks the string as a URI.
func (s *StringNode) URL() *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckURL})
	return s
}

// Regex constrains the string to a pattern.
func (s *StringNode) Regex(pattern string) *StringNode {
	s.Checks = append(s.Checks, StringCheck{Code: CheckRegex, Pattern: pattern})
	return s
}

// NumberNode describes a number with an ordered constraint list.
type NumberNode struct {
	Meta
	Checks []NumberCheck
}

func Number() *NumberNode      { return &NumberNode{} }
func (*NumberNode) Kind() Kind { return KindNumber }

// Min requires an inclusive lower bound.
func (n *NumberNode) Min(v float64) *NumberNode {
	n.Checks = append(n.Checks, NumberCheck{Code: CheckMin, Value: v, Inclusive: true})
	return n
}

// Gt requires an exclusive lower bound.
func (n *NumberNode) Gt(v float64) *NumberNode {
	n.Checks = append(n.Checks, NumberCheck{Code: CheckMin, Value: v})
	return n
}

// Max requires an inclusive upper bound.
func (n *NumberNode) Max(v float64) *NumberNode {
	n.Checks = append(n.Checks, NumberCheck{Code: CheckMax, Value: v, Inclusive: true})
	return n
}

// Lt requires an exclusive upper bound.
func (n *NumberNode) Lt(v float64) *NumberNode {
	n.Checks = append(n.Checks, NumberCheck{Code: CheckMax, Value: v})
	return n
}

// Int restricts the number to integers.
func (n *NumberNode) Int() *NumberNode {
	n.Checks = append(n.Checks, NumberCheck{Code: CheckInt})
	return n
}

// BoolNode describes a boolean.
type BoolNode struct{ Meta }

func Bool() *BoolNode        { return &BoolNode{} }
func (*BoolNode) Kind() Kind { return KindBoolean }

// BigIntNode describes an arbitrary-precision integer.
type BigIntNode struct{ Meta }

func BigInt() *BigIntNode      { return &BigIntNode{} }
func (*BigIntNode) Kind() Kind { return KindBigInt }

// DateNode describes a point in time.
type DateNode struct{ Meta }

func Date() *DateNode        { return &DateNode{} }
func (*DateNode) Kind() Kind { return KindDate }

// NullNode describes the JSON null value.
type NullNode struct{ Meta }

func Null() *NullNode            { return &NullNode{} }
func (*NullNode) Kind() Kind     { return KindNull }
func (*NullNode) Nullable() bool { return true }

// NeverNode marks a forbidden value; objects keep such fields structurally
// present but never require them.
type NeverNode struct{ Meta }

func Never() *NeverNode       { return &NeverNode{} }
func (*NeverNode) Kind() Kind { return KindNever }

// LiteralNode pins a value to a single constant.
type LiteralNode struct {
	Meta
	Value any
}

func Literal(v any) *LiteralNode      { return &LiteralNode{Value: v} }
func (*LiteralNode) Kind() Kind       { return KindLiteral }
func (l *LiteralNode) Nullable() bool { return l.Value == nil }

// EnumNode restricts a value to a declared, type-homogeneous set.
type EnumNode struct {
	Meta
	Values []any
}

func Enum(values ...any) *EnumNode { return &EnumNode{Values: values} }
func (*EnumNode) Kind() Kind       { return KindEnum }

// NativeEnumNode mirrors EnumNode for enums lifted from host-language
// constants; values keep their declaration order.
type NativeEnumNode struct {
	Meta
	Values []any
}

func NativeEnum(values ...any) *NativeEnumNode { return &NativeEnumNode{Values: values} }
func (*NativeEnumNode) Kind() Kind             { return KindNativeEnum }

// ---- composite nodes ----

// Field maps an object key to its node.
type Field struct {
	Name string
	Node Node
}

// ObjectNode describes a fixed-shape object; field order is declaration order.
type ObjectNode struct {
	Meta
	Fields []Field
}

func Object() *ObjectNode      { return &ObjectNode{} }
func (*ObjectNode) Kind() Kind { return KindObject }

// Field appends a named field.
func (o *ObjectNode) Field(name string, n Node) *ObjectNode {
	o.Fields = append(o.Fields, Field{Name: name, Node: n})
	return o
}

// RecordNode describes a dynamic-key map. Any declared shape is generated
// exactly like an object's.
type RecordNode struct {
	Meta
	Fields []Field
}

func Record() *RecordNode      { return &RecordNode{} }
func (*RecordNode) Kind() Kind { return KindRecord }

// Field appends a declared entry of the record's shape.
func (r *RecordNode) Field(name string, n Node) *RecordNode {
	r.Fields = append(r.Fields, Field{Name: name, Node: n})
	return r
}

// ArrayNode describes an array of one element node.
type ArrayNode struct {
	Meta
	Elem Node
}

func Array(elem Node) *ArrayNode { return &ArrayNode{Elem: elem} }
func (*ArrayNode) Kind() Kind    { return KindArray }

// UnionNode describes a value matching one of several branches.
type UnionNode struct {
	Meta
	Branches []Node
}

func Union(branches ...Node) *UnionNode { return &UnionNode{Branches: branches} }
func (*UnionNode) Kind() Kind           { return KindUnion }

func (u *UnionNode) Nullable() bool {
	for _, b := range u.Branches {
		if b != nil && b.Nullable() {
			return true
		}
	}
	return false
}

// IntersectionNode describes a value matching both operands.
type IntersectionNode struct {
	Meta
	Left  Node
	Right Node
}

func Intersection(left, right Node) *IntersectionNode {
	return &IntersectionNode{Left: left, Right: right}
}
func (*IntersectionNode) Kind() Kind { return KindIntersection }

// ---- wrapper nodes ----

// OptionalNode wraps a node whose value may be absent.
type OptionalNode struct {
	Meta
	Inner Node
}

func Optional(inner Node) *OptionalNode { return &OptionalNode{Inner: inner} }
func (*OptionalNode) Kind() Kind        { return KindOptional }
func (*OptionalNode) Optional() bool    { return true }

func (o *OptionalNode) Nullable() bool { return o.Inner != nil && o.Inner.Nullable() }

// NullableNode wraps a node whose value may be null.
type NullableNode struct {
	Meta
	Inner Node
}

func Nullable(inner Node) *NullableNode { return &NullableNode{Inner: inner} }
func (*NullableNode) Kind() Kind        { return KindNullable }
func (*NullableNode) Nullable() bool    { return true }

func (n *NullableNode) Optional() bool { return n.Inner != nil && n.Inner.Optional() }

// ---- effect nodes ----

// Effect codes.
const (
	EffectTransform  = "transform"
	EffectRefine     = "refine"
	EffectPreprocess = "preprocess"
)

// Effect is one declared effect on a wrapped node. Only transform-kind
// effects participate in output-shape inference.
type Effect struct {
	Code      string
	Transform func(any) any  // EffectTransform / EffectPreprocess
	Check     func(any) bool // EffectRefine; never run by generation
}

// EffectNode wraps an inner node whose output shape after its transforms is
// not statically known.
type EffectNode struct {
	Meta
	Inner   Node
	Effects []Effect
}

func (*EffectNode) Kind() Kind { return KindEffect }

func (e *EffectNode) Nullable() bool { return e.Inner != nil && e.Inner.Nullable() }
func (e *EffectNode) Optional() bool { return e.Inner != nil && e.Inner.Optional() }

// Transform wraps inner with a transform effect.
func Transform(inner Node, fn func(any) any) *EffectNode {
	return &EffectNode{Inner: inner, Effects: []Effect{{Code: EffectTransform, Transform: fn}}}
}

// Preprocess wraps inner with a preprocess effect. Preprocessing changes the
// accepted input, not the produced output, so it never drives inference.
func Preprocess(inner Node, fn func(any) any) *EffectNode {
	return &EffectNode{Inner: inner, Effects: []Effect{{Code: EffectPreprocess, Transform: fn}}}
}

// Transform appends a further transform effect; the generator honors the
// last one declared.
func (e *EffectNode) Transform(fn func(any) any) *EffectNode {
	e.Effects = append(e.Effects, Effect{Code: EffectTransform, Transform: fn})
	return e
}

// Refine appends a refinement effect.
func (e *EffectNode) Refine(fn func(any) bool) *EffectNode {
	e.Effects = append(e.Effects, Effect{Code: EffectRefine, Check: fn})
	return e
}

// ---- residual nodes ----

// UnsupportedNode stands in for kinds with no structural mapping. The note
// names the original kind for diagnostics only.
type UnsupportedNode struct {
	Meta
	Note string
}

func (*UnsupportedNode) Kind() Kind { return KindUnsupported }

// Unsupported builds a residual node for an arbitrary kind name.
func Unsupported(note string) *UnsupportedNode { return &UnsupportedNode{Note: note} }

// Any accepts any value.
func Any() *UnsupportedNode { return &UnsupportedNode{Note: "any"} }

// Unknown accepts any value that must be narrowed before use.
func Unknown() *UnsupportedNode { return &UnsupportedNode{Note: "unknown"} }

// Void describes the absence of a value.
func Void() *UnsupportedNode { return &UnsupportedNode{Note: "void"} }
