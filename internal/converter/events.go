package converter

import (
	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// EventKind enumerates the lifecycle points extensions can hook. The
// payload type is fixed per kind: converter events carry only the Context,
// creation events carry the reflection and its node, resolve events carry
// the reflection.
type EventKind int

const (
	EventBegin EventKind = iota
	EventFileBegin
	EventCreateDeclaration
	EventCreateSignature
	EventCreateParameter
	EventCreateTypeParameter
	EventFunctionImplementation
	EventResolveBegin
	EventResolve
	EventResolveEnd
	EventEnd
)

var eventKindNames = map[EventKind]string{
	EventBegin:                  "begin",
	EventFileBegin:              "file begin",
	EventCreateDeclaration:      "create declaration",
	EventCreateSignature:        "create signature",
	EventCreateParameter:        "create parameter",
	EventCreateTypeParameter:    "create type parameter",
	EventFunctionImplementation: "function implementation",
	EventResolveBegin:           "resolve begin",
	EventResolve:                "resolve",
	EventResolveEnd:             "resolve end",
	EventEnd:                    "end",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ConverterEvent is the payload of begin/end and resolve begin/end events.
type ConverterEvent struct {
	Context *Context
}

// FileEvent is the payload of file begin events. Listeners may set
// External to have the file's whole subtree visited with the external
// flag raised.
type FileEvent struct {
	Context *Context
	File    *frontend.SourceFile

	External bool
}

// DeclarationEvent is the payload of creation and function-implementation
// events.
type DeclarationEvent struct {
	Context    *Context
	Reflection *reflect.Reflection
	Node       frontend.Node
}

// ResolveEvent is the payload of the per-reflection resolve dispatch.
type ResolveEvent struct {
	Context    *Context
	Reflection *reflect.Reflection
}

// listeners is the typed fan-out surface of one Converter. Listener slices
// are appended during plugin construction and iterated in registration
// order.
type listeners struct {
	converter   map[EventKind][]func(ConverterEvent)
	file        []func(*FileEvent)
	declaration map[EventKind][]func(DeclarationEvent)
	resolve     []func(ResolveEvent)
}

func newListeners() *listeners {
	return &listeners{
		converter:   make(map[EventKind][]func(ConverterEvent)),
		declaration: make(map[EventKind][]func(DeclarationEvent)),
	}
}

// OnConverter subscribes to one of EventBegin, EventResolveBegin,
// EventResolveEnd, EventEnd.
func (c *Converter) OnConverter(kind EventKind, fn func(ConverterEvent)) {
	c.listeners.converter[kind] = append(c.listeners.converter[kind], fn)
}

// OnFileBegin subscribes to the per-file event fired before a file's nodes
// are visited.
func (c *Converter) OnFileBegin(fn func(*FileEvent)) {
	c.listeners.file = append(c.listeners.file, fn)
}

// OnDeclaration subscribes to one of the creation events or
// EventFunctionImplementation.
func (c *Converter) OnDeclaration(kind EventKind, fn func(DeclarationEvent)) {
	c.listeners.declaration[kind] = append(c.listeners.declaration[kind], fn)
}

// OnResolve subscribes to the per-reflection resolve dispatch.
func (c *Converter) OnResolve(fn func(ResolveEvent)) {
	c.listeners.resolve = append(c.listeners.resolve, fn)
}

func (c *Converter) emitConverter(kind EventKind, ctx *Context) {
	for _, fn := range c.listeners.converter[kind] {
		fn(ConverterEvent{Context: ctx})
	}
}

func (c *Converter) emitFile(ctx *Context, file *frontend.SourceFile) *FileEvent {
	ev := &FileEvent{Context: ctx, File: file}
	for _, fn := range c.listeners.file {
		fn(ev)
	}
	return ev
}

func (c *Converter) emitDeclaration(kind EventKind, ctx *Context, r *reflect.Reflection, n frontend.Node) {
	for _, fn := range c.listeners.declaration[kind] {
		fn(DeclarationEvent{Context: ctx, Reflection: r, Node: n})
	}
}

func (c *Converter) emitResolve(ctx *Context, r *reflect.Reflection) {
	for _, fn := range c.listeners.resolve {
		fn(ResolveEvent{Context: ctx, Reflection: r})
	}
}
