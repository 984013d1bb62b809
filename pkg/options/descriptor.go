package options

import "github.com/goliatone/go-searchdown/pkg/candidates"

// Validator accepts or rejects an already coerced value. It may read the
// owning Config to enforce cross-setting rules.
type Validator func(value any, cfg *Config) bool

// DefaultFunc computes a default from the owning Config.
type DefaultFunc func(cfg *Config) any

// Descriptor is one typed, validated setting with a default.
type Descriptor struct {
	Name           Name
	Kind           Kind
	Default        any
	Validate       Validator
	InvalidMessage string

	value any
	set   bool
}

// Get returns the stored value or the default. DefaultFunc defaults are
// evaluated on every call so they track sibling settings; a computed default
// the validator rejects resolves to the zero value of the kind.
func (d *Descriptor) Get(cfg *Config) any {
	if d.set {
		return d.value
	}
	fn, ok := d.Default.(DefaultFunc)
	if !ok {
		return d.Default
	}
	value := fn(cfg)
	if d.Validate != nil && !d.Validate(value, cfg) {
		return zeroValue(d.Kind)
	}
	return value
}

func zeroValue(kind Kind) any {
	switch kind {
	case KindNumber:
		return float64(0)
	case KindBoolean:
		return false
	case KindArray:
		return []string{}
	case KindObject:
		return candidates.NewList()
	default:
		return ""
	}
}

// IsSet reports whether an explicit value is stored.
func (d *Descriptor) IsSet() bool { return d.set }

// Set coerces and validates raw. A nil raw value resets the setting to its
// default. On failure the previous value is kept and the issue is reported
// to cfg.
func (d *Descriptor) Set(raw any, cfg *Config) bool {
	if raw == nil {
		d.value, d.set = nil, false
		return true
	}

	parsed, err := Coerce(d.Kind, raw)
	if err != nil {
		cfg.report(typeMismatch(d.Name, d.Kind, raw))
		return false
	}
	if d.Validate != nil && !d.Validate(parsed, cfg) {
		cfg.report(invalidValue(d.Name, d.Kind, raw, d.InvalidMessage))
		return false
	}
	d.value, d.set = parsed, true
	return true
}
