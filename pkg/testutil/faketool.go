package testutil

import (
	"context"
	"sync"
)

// ToolCall records one invocation of FakeTool.
type ToolCall struct {
	Mode       string
	Inputs     [][]byte
	HavokIndex uint16
	Cancelled  bool
}

// FakeTool is a recording stand-in for the external conversion tool. Each
// mode delegates to its Func field when set and otherwise returns a
// deterministic result derived from the inputs.
type FakeTool struct {
	TagSkeletonFunc   func(ctx context.Context, skeleton []byte) ([]byte, error)
	PackAnimationFunc func(ctx context.Context, xml []byte) ([]byte, error)
	CombineFunc       func(ctx context.Context, skeleton, animation []byte, index uint16) ([]byte, error)

	mu    sync.Mutex
	calls []ToolCall
}

// TagSkeleton converts a binary skeleton payload to tree-format text.
func (f *FakeTool) TagSkeleton(ctx context.Context, skeleton []byte) ([]byte, error) {
	f.record(ToolCall{Mode: "tag-skeleton", Inputs: [][]byte{skeleton}, Cancelled: ctx.Err() != nil})
	if f.TagSkeletonFunc != nil {
		return f.TagSkeletonFunc(ctx, skeleton)
	}
	return append([]byte(nil), skeleton...), nil
}

// PackAnimation converts tree-format animation text to a binary payload.
func (f *FakeTool) PackAnimation(ctx context.Context, xml []byte) ([]byte, error) {
	f.record(ToolCall{Mode: "pack-animation", Inputs: [][]byte{xml}, Cancelled: ctx.Err() != nil})
	if f.PackAnimationFunc != nil {
		return f.PackAnimationFunc(ctx, xml)
	}
	return append([]byte(nil), xml...), nil
}

// Combine merges a skeleton payload with one animation of an animation payload.
func (f *FakeTool) Combine(ctx context.Context, skeleton, animation []byte, index uint16) ([]byte, error) {
	f.record(ToolCall{Mode: "combine", Inputs: [][]byte{skeleton, animation}, HavokIndex: index, Cancelled: ctx.Err() != nil})
	if f.CombineFunc != nil {
		return f.CombineFunc(ctx, skeleton, animation, index)
	}
	out := append([]byte(nil), skeleton...)
	return append(out, animation...), nil
}

// Calls returns the recorded invocations in order.
func (f *FakeTool) Calls() []ToolCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ToolCall(nil), f.calls...)
}

// Modes returns the mode of every recorded invocation in order.
func (f *FakeTool) Modes() []string {
	var modes []string
	for _, c := range f.Calls() {
		modes = append(modes, c.Mode)
	}
	return modes
}

func (f *FakeTool) record(c ToolCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}
