// Package jsvalidation converts server validation rules into client-side
// rules for the jQuery validation plugin, with every message resolved the
// way the server would phrase it.
//
// # Overview
//
// It mirrors the JsValidator facade of laravel-jsvalidation. A validator's
// rules are walked field by field; each rule is mapped to its client form
// (target field, bucket, parameters) and paired with its final message.
//
//	jsv, err := factory.Make(validation.Rules{
//	    "email":    "required|email",
//	    "password": "required|confirmed|min:8",
//	}, nil, nil)
//	if err != nil { ... }
//
//	data := jsv.Selector("#signup").ValidationData()
//	// {"selector":"#signup","rules":{"email":{"laravelValidation":[...]}, ...}}
//
// # Buckets
//
// Rules the browser can check land in the "laravelValidation" bucket.
// With remote validation enabled, unique, exists and active_url land in
// "laravelValidationRemote" and are checked by calling back to the server.
// Every other rule without a client counterpart is dropped.
//
// # Disabling
//
// A field declaring no_js_validation is left out entirely.
//
// # Failures
//
// A rule whose parameters are unusable, or whose message resolution
// panics, is logged and skipped. The remaining rules are still emitted.
package jsvalidation
