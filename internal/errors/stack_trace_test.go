package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/cscheme/internal/lexer"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "fact",
				FileName:     "test.scm",
				Position:     &lexer.Position{Line: 10, Column: 5},
			},
			expected: "fact [line: 10, column: 5]",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "fact",
				FileName:     "test.scm",
				Position:     nil,
			},
			expected: "fact",
		},
		{
			name: "Frame with module-qualified name",
			frame: StackFrame{
				FunctionName: "seq:map",
				FileName:     "test.scm",
				Position:     &lexer.Position{Line: 42, Column: 15},
			},
			expected: "seq:map [line: 42, column: 15]",
		},
		{
			name: "Frame for an anonymous lambda",
			frame: StackFrame{
				FunctionName: "#<lambda>",
				FileName:     "",
				Position:     &lexer.Position{Line: 7, Column: 1},
			},
			expected: "#<lambda> [line: 7, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: "fact [line: 1, column: 1]",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "*", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "-", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: "- [line: 10, column: 3]\n* [line: 15, column: 5]\nfact [line: 20, column: 1]",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "car", Position: nil},
			},
			expected: "car\nfact [line: 20, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "fact", Position: &lexer.Position{Line: 1, Column: 1}},
		{FunctionName: "*", Position: &lexer.Position{Line: 2, Column: 1}},
		{FunctionName: "-", Position: &lexer.Position{Line: 3, Column: 1}},
	}

	reversed := original.Reverse()

	// Check that order is reversed
	if reversed[0].FunctionName != "-" {
		t.Errorf("Expected first frame to be '-', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "*" {
		t.Errorf("Expected second frame to be '*', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "fact" {
		t.Errorf("Expected third frame to be 'fact', got %q", reversed[2].FunctionName)
	}

	// Check that original is unchanged
	if original[0].FunctionName != "fact" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("fact"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "*", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "-", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("-"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("fact"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "fact", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "*", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "-", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("fact"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: 0,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "fact"},
			},
			expected: 1,
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "fact"},
				{FunctionName: "*"},
				{FunctionName: "-"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestStackTrace_TruncateInnermost(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "fact", Position: &lexer.Position{Line: 20, Column: 1}},
		{FunctionName: "*", Position: &lexer.Position{Line: 15, Column: 5}},
		{FunctionName: "-", Position: &lexer.Position{Line: 10, Column: 3}},
	}

	if got := trace.TruncateInnermost(0); len(got) != 3 {
		t.Errorf("n<=0 must mean unlimited, got length %d", len(got))
	}
	if got := trace.TruncateInnermost(10); len(got) != 3 {
		t.Errorf("n larger than the trace must return it unchanged, got length %d", len(got))
	}

	got := trace.TruncateInnermost(2)
	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	// Oldest-to-newest order is kept: the 2 innermost (most recent)
	// frames are "*" and "-", with "*" still ordered before "-".
	if got[0].FunctionName != "*" || got[1].FunctionName != "-" {
		t.Errorf("expected [* -], got [%s %s]", got[0].FunctionName, got[1].FunctionName)
	}

	// original must be left untouched
	if trace[0].FunctionName != "fact" {
		t.Errorf("TruncateInnermost must not mutate its receiver")
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &lexer.Position{Line: 42, Column: 13}
	frame := NewStackFrame("fact", "test.scm", pos)

	if frame.FunctionName != "fact" {
		t.Errorf("Expected FunctionName 'fact', got %q", frame.FunctionName)
	}
	if frame.FileName != "test.scm" {
		t.Errorf("Expected FileName 'test.scm', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a call stack: fact -> * -> -
	trace := StackTrace{
		{FunctionName: "fact", FileName: "main.scm", Position: &lexer.Position{Line: 50, Column: 1}},
		{FunctionName: "*", FileName: "main.scm", Position: &lexer.Position{Line: 30, Column: 5}},
		{FunctionName: "-", FileName: "main.scm", Position: &lexer.Position{Line: 10, Column: 3}},
	}

	// Test string representation (should show most recent first)
	expected := "- [line: 10, column: 3]\n* [line: 30, column: 5]\nfact [line: 50, column: 1]"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	// Test depth
	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	// Test top (most recent call)
	top := trace.Top()
	if top == nil || top.FunctionName != "-" {
		t.Errorf("Expected top to be '-', got %v", top)
	}

	// Test bottom (original caller)
	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "fact" {
		t.Errorf("Expected bottom to be 'fact', got %v", bottom)
	}
}

func TestStackTrace_StringFormat(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "fact", Position: &lexer.Position{Line: 8, Column: 4}},
		{FunctionName: "=", Position: &lexer.Position{Line: 3, Column: 20}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "= [line: 3, column: 20]" {
		t.Errorf("First line doesn't match the expected format: %q", lines[0])
	}
	if lines[1] != "fact [line: 8, column: 4]" {
		t.Errorf("Second line doesn't match the expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
