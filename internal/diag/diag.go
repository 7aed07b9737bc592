// Package diag renders interpreter diagnostics as structured JSON, for
// the out-of-scope debugger shell and editor tooling that want to
// consume an error programmatically rather than scrape the
// human-readable "BACKTRACE" banner the CLI prints to stderr (§1, §6.1).
// It is a thin collaborator: the evaluator core never imports this
// package, only cmd/cscheme does, when --json is passed.
package diag

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	cerrors "github.com/cwbudde/cscheme/internal/errors"
)

// RuntimeErrorJSON builds a JSON document describing a runtime error:
// its kind, message, position (if known), and backtrace, one frame per
// array element, oldest first.
func RuntimeErrorJSON(err *cerrors.RuntimeError) (string, error) {
	doc := "{}"
	var e error
	set := func(path string, value any) {
		if e != nil {
			return
		}
		doc, e = sjson.Set(doc, path, value)
	}
	set("kind", err.Kind.String())
	set("message", err.Message)
	if err.Pos != nil {
		set("position.line", err.Pos.Line)
		set("position.column", err.Pos.Column)
	}
	for _, frame := range err.Backtrace {
		entry := frameEntry(frame)
		set("backtrace.-1", entry)
	}
	// innermost/outermost are where the error was actually raised and
	// where the call chain leading to it began: tooling that only wants
	// one endpoint can read these without walking the whole array.
	if top := err.Backtrace.Top(); top != nil {
		set("innermost", frameEntry(*top))
	}
	if bottom := err.Backtrace.Bottom(); bottom != nil {
		set("outermost", frameEntry(*bottom))
	}
	if e != nil {
		return "", e
	}
	return doc, nil
}

func frameEntry(frame cerrors.StackFrame) map[string]any {
	entry := map[string]any{"function": frame.FunctionName}
	if frame.Position != nil {
		entry["line"] = frame.Position.Line
		entry["column"] = frame.Position.Column
	}
	return entry
}

// CompilerErrorJSON builds a JSON document for a syntax error.
func CompilerErrorJSON(err *cerrors.CompilerError) (string, error) {
	doc, e := sjson.Set("{}", "kind", "Syntax")
	if e != nil {
		return "", e
	}
	doc, e = sjson.Set(doc, "message", err.Message)
	if e != nil {
		return "", e
	}
	doc, e = sjson.Set(doc, "position.line", err.Pos.Line)
	if e != nil {
		return "", e
	}
	doc, e = sjson.Set(doc, "position.column", err.Pos.Column)
	if e != nil {
		return "", e
	}
	return doc, nil
}

// BacktraceDepth reads back the number of frames recorded in a
// diagnostic document produced by RuntimeErrorJSON, without decoding
// the whole structure — the query-by-path style gjson is meant for.
func BacktraceDepth(doc string) int {
	return int(gjson.Get(doc, "backtrace.#").Int())
}
