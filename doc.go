package skema

// Package skema provides:
//
// - Composable runtime schemas (see dsl/) with a non-panicking SafeParse
// - A stable error model via Issues (path, code, translated message, params)
// - Decoding of JSON and YAML sources with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the DSL under dsl/, schema documents under schemafile/, and the CLI under cmd/skema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := dsl.Object(dsl.Field("name", dsl.String()))
//  res := s.SafeParse(input)
//  res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data))
//  res, err := skema.ParseFrom(ctx, s, skema.YAMLBytes(data), skema.ParseOpt{RejectDuplicateKeys: true})
//
