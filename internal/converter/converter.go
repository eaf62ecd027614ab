// Package converter turns a parsed, type-checked program into a reflection
// model in two phases: a state-carrying traversal that visits every syntax
// node of every compiled file exactly once, then a resolution pass that
// visits every created reflection exactly once so extensions can finish
// cross-reflection work on the complete graph.
package converter

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/plugin"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// APIVersion is the converter's extension API version, matched against
// each plugin registration's Requires constraint.
const APIVersion = "1.0.0"

// Extension is a converter plugin instance. Construction registers its
// event listeners; the instance itself only needs to be identifiable.
type Extension interface {
	Name() string
}

// Result is what one Convert call produces: the populated reflection tree
// plus every diagnostic the front-end collected. Diagnostics never abort a
// conversion; only a genuine engine fault does.
type Result struct {
	Project     *reflect.Project
	Diagnostics []frontend.Diagnostic
}

// Converter drives the two-phase pipeline. Its configuration and plugin
// set are reusable across Convert calls; the Context and reflection tree
// are fresh per call and never shared.
type Converter struct {
	opts    Options
	host    frontend.Host
	plugins *plugin.Host[*Converter, Extension]
	log     *zap.Logger

	listeners *listeners
	table     map[frontend.NodeKind]visitFn
	loaded    bool
}

// New creates a Converter bound to a front-end host. A nil logger
// disables logging.
func New(opts Options, host frontend.Host, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Converter{
		opts:      opts.withDefaults(),
		host:      host,
		plugins:   plugin.NewHost[*Converter, Extension](APIVersion),
		log:       log,
		listeners: newListeners(),
	}
	c.buildDispatch()
	return c
}

// Options returns the converter's effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// Host returns the front-end adapter.
func (c *Converter) Host() frontend.Host {
	return c.host
}

// Plugins exposes the plugin host for registration.
func (c *Converter) Plugins() *plugin.Host[*Converter, Extension] {
	return c.plugins
}

// Logger returns the converter's logger.
func (c *Converter) Logger() *zap.Logger {
	return c.log
}

// Convert runs the full pipeline over the given files and returns the
// reflection tree plus collected diagnostics. File paths are canonicalized
// before being handed to the front-end. The only error conditions are
// engine faults: plugin activation failure or a missing grammar.
func (c *Converter) Convert(fileNames []string) (*Result, error) {
	if err := c.loadPlugins(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(fileNames))
	for _, name := range fileNames {
		paths = append(paths, c.host.CanonicalFileName(name))
	}

	started := time.Now()
	program, err := frontend.NewProgram(c.host, paths, frontend.ProgramOptions{
		Language:            c.opts.Language,
		Target:              c.opts.Target,
		IncludeDeclarations: c.opts.IncludeDeclarations,
	})
	if err != nil {
		return nil, errors.Wrap(err, "converter: create program")
	}
	defer program.Close()

	project := reflect.NewProject(c.opts.Name)
	ctx := newContext(c, project, program)

	c.emitConverter(EventBegin, ctx)
	c.compile(ctx)
	c.resolve(ctx)
	c.emitConverter(EventEnd, ctx)

	c.log.Info("conversion finished",
		zap.Int("files", len(program.Files)),
		zap.Int("reflections", project.Count()),
		zap.Int("diagnostics", len(program.Diagnostics)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &Result{
		Project:     project,
		Diagnostics: program.Diagnostics,
	}, nil
}

// loadPlugins activates the registered extensions once per converter.
// Activation failure is fatal: listeners registered later in the intended
// order may depend on state established by earlier ones, so a partial set
// must never run.
func (c *Converter) loadPlugins() error {
	if c.loaded {
		return nil
	}
	if err := c.plugins.Load(c); err != nil {
		return err
	}
	c.loaded = true
	c.log.Debug("plugins activated", zap.Strings("order", c.plugins.LoadOrder()))
	return nil
}

// compile is phase one: walk every file's tree in the order the front-end
// reports, dispatching a file-begin event before each file. This order is
// not stable across front-end versions; nothing downstream may rely on it.
func (c *Converter) compile(ctx *Context) {
	for _, file := range ctx.Program.Files {
		ev := c.emitFile(ctx, file)
		ctx.WithExternal(ev.External, func() {
			c.visit(ctx, file.Root())
		})
	}
}

// resolve is phase two: exactly one resolve dispatch per reflection that
// existed when the phase began. The iteration runs over a snapshot, so
// reflections created by resolve-time extensions are not themselves
// re-dispatched within the same pass.
func (c *Converter) resolve(ctx *Context) {
	c.emitConverter(EventResolveBegin, ctx)
	for _, r := range ctx.Project.Snapshot() {
		c.emitResolve(ctx, r)
	}
	c.emitConverter(EventResolveEnd, ctx)
}
