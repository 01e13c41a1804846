package log

// Package log is a small wrapper around the standard library logger that
// gives each component of the search pipeline its own named logger.
//
// Features
//
//   - Per-component loggers via ForComponent(name)
//   - Automatic prefix in every line: `[name]` (example: `[aggregator] people fetch failed`)
//   - Level helpers: Infof, Warnf, Errorf, Debugf
//   - Debug logging enabled globally (SetGlobalDebug) or per component
//     (EnableDebugFor / DisableDebugFor)
//   - Central output writer (SetOutput) that updates existing loggers
//
// Non-goals: structured/JSON logging, sampling, rotation. The surface stays
// minimal on purpose.
//
// Basic usage:
//
//	l := log.ForComponent("client")
//	l.Infof("searching catalog for %q", query)
//	l.Warnf("transfers fetch failed: %v", err)
//	l.Debugf("raw response: %s", body) // printed only when debug is enabled
//
// Tests can redirect output by calling SetOutput with a bytes.Buffer and
// asserting on its contents. All exported functions are safe for concurrent
// use; the package relies on sync.Map and atomic primitives internally.
