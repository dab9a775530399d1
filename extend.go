package oasgen

// Extend attaches one or more override fragments to a node and returns the
// same node, so it chains inline while a tree is being built:
//
//	user := oasgen.Extend(
//		oasgen.Object().Field("id", oasgen.String().UUID()),
//		oasgen.Fragment{"description": "registered user"},
//	)
//
// Overrides accumulate in call order and take precedence over generated
// fields during Generate, later ones winning. The override's shape is not
// validated here. Attachment mutates the node and belongs to authoring time;
// it is not safe to run concurrently with Generate on the same node.
func Extend[N Node](n N, overrides ...Fragment) N {
	n.appendOverrides(overrides...)
	return n
}
