// Package hooking lets observers such as loggers, recorders and the monitor
// follow what the autosplitter does without the autosplitter knowing about
// them.
package hooking

import (
	"fmt"
	"reflect"
	"slices"
)

// A HookPos names a hook site. Sites are compared by pointer.
type HookPos struct {
	Name string
}

// HookCtx describes one invocation of a hook site.
type HookCtx struct {
	// Domain is the hookable firing the hook.
	Domain Hookable

	// Pos is the hook site.
	Pos *HookPos

	// Item is the subject of the site, such as a timer command or a game.
	Item any

	// Detail is optional extra data. Each site documents what it passes.
	Detail any
}

// A Hookable can be observed with hooks. Hooks are registered while wiring
// and are never removed.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
	InvokeHook(ctx HookCtx)
}

// A Hook observes a Hookable.
type Hook interface {
	// Func is called synchronously at every hook site of the hookables the
	// hook is registered with. It must not block.
	Func(ctx HookCtx)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements Hookable. Embed it to make a type hookable.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase creates a HookableBase with no hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// NumHooks implements Hookable.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks implements Hookable. The returned slice is a copy.
func (h *HookableBase) Hooks() []Hook {
	return slices.Clone(h.hooks)
}

// AcceptHook implements Hookable. It panics if hook is already registered.
// Hooks that cannot be compared, such as HookFuncs, are never considered
// duplicates.
func (h *HookableBase) AcceptHook(hook Hook) {
	if reflect.TypeOf(hook).Comparable() && slices.Contains(h.hooks, hook) {
		panic(fmt.Sprintf("hooking: %T registered twice", hook))
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook implements Hookable. Hooks run in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
