// Package reflect defines the output model of a conversion: a rooted tree
// of typed reflections describing the documented entities of a program,
// with auxiliary indexes for id- and symbol-keyed lookup.
package reflect

// Kind classifies reflections.
type Kind string

const (
	KindProject              Kind = "project"
	KindModule               Kind = "module"
	KindClass                Kind = "class"
	KindInterface            Kind = "interface"
	KindEnum                 Kind = "enum"
	KindEnumMember           Kind = "enum member"
	KindFunction             Kind = "function"
	KindMethod               Kind = "method"
	KindConstructor          Kind = "constructor"
	KindProperty             Kind = "property"
	KindVariable             Kind = "variable"
	KindTypeAlias            Kind = "type alias"
	KindCallSignature        Kind = "call signature"
	KindConstructorSignature Kind = "constructor signature"
	KindIndexSignature       Kind = "index signature"
	KindParameter            Kind = "parameter"
	KindTypeParameter        Kind = "type parameter"
)

// IsSignature reports whether the kind is a signature form.
func (k Kind) IsSignature() bool {
	switch k {
	case KindCallSignature, KindConstructorSignature, KindIndexSignature:
		return true
	default:
		return false
	}
}

// IsFunctionLike reports whether reflections of this kind own signatures.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case KindFunction, KindMethod, KindConstructor:
		return true
	default:
		return false
	}
}
