package converter

import "github.com/dusk-indust/doctree/internal/frontend"

// OutputMode selects how the renderer downstream lays out output.
type OutputMode string

const (
	ModePerModule  OutputMode = "modules"
	ModeSingleFile OutputMode = "file"
)

// Options is the configuration surface the conversion engine recognizes.
type Options struct {
	// Name is the project display name. Default: "Documentation".
	Name string `yaml:"name"`

	// Mode selects single-file vs per-module output. Default: per-module.
	Mode OutputMode `yaml:"mode"`

	// ExternalPattern marks matching file paths as external (glob syntax).
	// Default: none.
	ExternalPattern string `yaml:"externalPattern"`

	// IncludeDeclarations keeps declaration-only files in the program.
	// Default: false.
	IncludeDeclarations bool `yaml:"includeDeclarations"`

	// ExcludeExternals removes externally-resolved reflections from the
	// graph instead of merely flagging them. Default: false.
	ExcludeExternals bool `yaml:"excludeExternals"`

	// Language selects the front-end grammar. Default: TypeScript.
	Language frontend.Language `yaml:"language"`

	// Target selects the compilation target level used for default
	// library resolution.
	Target frontend.Target `yaml:"target"`
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "Documentation"
	}
	if o.Mode == "" {
		o.Mode = ModePerModule
	}
	if o.Language == "" {
		o.Language = frontend.LangTypeScript
	}
	return o
}
