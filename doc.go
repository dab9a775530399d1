package oasgen

// Package oasgen provides:
//
// - A validator-tree node model with chainable constructors (String, Number, Object, ...)
// - Extend for attaching OpenAPI override fragments to any node at authoring time
// - Generate, a total recursive generator turning a tree into an open schema Fragment
// - Best-effort output-type inference for transform nodes via one-shot runtime probes
//
// Design policy:
// - Keep the node model and the generator in the root package; helpers under internal/.
// - Place document assembly under document/ and the CLI under cmd/oasgen.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  user := oasgen.Object().
//      Field("id", oasgen.String().UUID()).
//      Field("age", oasgen.Optional(oasgen.Number().Int()))
//
//  frag := oasgen.Generate(user, oasgen.ModeInput)
//
//  doc := registry.Build(document.Info{Title: "API", Version: "1.0.0"}, oasgen.ModeOutput)
//
