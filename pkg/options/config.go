package options

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-searchdown/pkg/candidates"
	"github.com/goliatone/go-searchdown/pkg/logging"
)

// Order is the dropdown sort direction.
type Order string

const (
	OrderNone Order = ""
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// DefaultPlaceholder is shown in an empty input.
const DefaultPlaceholder = "Search"

// DefaultMaxHeight caps the dropdown height in pixels.
const DefaultMaxHeight = 600

var colorVars = []struct {
	name Name
	css  string
}{
	{BaseBackColor, "--sdBackBase"},
	{SelectedBackColor, "--sdBackSelected"},
	{HoverBackColor, "--sdBackHover"},
	{BaseTextColor, "--sdTextBase"},
	{SelectedTextColor, "--sdTextSelected"},
	{HoverTextColor, "--sdTextHover"},
}

var seq atomic.Int64

// Config is the resolved configuration of one widget.
type Config struct {
	id          int
	logger      zerolog.Logger
	descriptors map[Name]*Descriptor

	mu      sync.Mutex
	issues  []Issue
	ignored []string
}

// Option customizes Config construction.
type Option func(*Config)

// WithID sets the instance id used by the computed inputName default.
func WithID(id int) Option {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.id = id
	}
}

// WithLogger routes configuration issues to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.logger = logger
	}
}

// New builds a Config from raw settings. Keys match case-insensitively and
// are applied in a fixed order; unknown keys are ignored. Rejected values
// are logged, recorded in Issues and leave the default in place.
func New(raw map[string]any, fns ...Option) *Config {
	cfg := &Config{logger: logging.Default()}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(cfg)
	}
	if cfg.id == 0 {
		cfg.id = int(seq.Add(1))
	}
	cfg.descriptors = descriptors()

	resolved := make(map[Name]any, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name, ok := ParseName(key)
		if !ok {
			cfg.ignore(key)
			continue
		}
		resolved[name] = raw[key]
	}

	for _, name := range canonical {
		value, ok := resolved[name]
		if !ok {
			continue
		}
		cfg.Set(name, value)
	}
	return cfg
}

func descriptors() map[Name]*Descriptor {
	list := []*Descriptor{
		{Name: Values, Kind: KindObject, Default: candidates.NewList(), Validate: nonEmptySet},
		{Name: Sort, Kind: KindString, Default: string(OrderNone), Validate: validOrder},
		{Name: Limit, Kind: KindNumber, Default: float64(0), Validate: nonNegativeInt},
		{
			Name: SimpleInput, Kind: KindBoolean, Default: false,
			Validate:       func(v any, c *Config) bool { return !v.(bool) || !c.Multiple() },
			InvalidMessage: "invalid value: an element cannot have both 'simpleInput = true' and 'multiple = true'. Setting 'simpleInput = false'",
		},
		{
			Name: Multiple, Kind: KindBoolean, Default: false,
			Validate:       func(v any, c *Config) bool { return !v.(bool) || !c.SimpleInput() },
			InvalidMessage: "invalid value: an element cannot have both 'simpleInput = true' and 'multiple = true'. Setting 'multiple = false'",
		},
		{
			Name: EnteredLimit, Kind: KindNumber, Default: float64(0),
			Validate: func(v any, c *Config) bool {
				n := v.(float64)
				return isInt(n) && (n == 0 || (n > 0 && c.Multiple()))
			},
			InvalidMessage: "invalid value: 'enteredLimit' must be 0 unless 'multiple = true'",
		},
		{Name: AddValues, Kind: KindBoolean, Default: false},
		{
			Name: SaveEntered, Kind: KindBoolean,
			Default:        DefaultFunc(func(c *Config) any { return !c.AddValues() }),
			Validate:       func(v any, c *Config) bool { return c.AddValues() || !v.(bool) },
			InvalidMessage: "invalid value: an element cannot have 'saveEntered = true' without 'addValues = true'. Setting 'saveEntered = false'",
		},
		{Name: HideEntered, Kind: KindBoolean, Default: false},
		{Name: AllowDuplicates, Kind: KindBoolean, Default: false},
		{Name: CaseSensitive, Kind: KindBoolean, Default: false},
		{Name: Placeholder, Kind: KindString, Default: DefaultPlaceholder},
		{
			Name: Required, Kind: KindNumber, Default: float64(0),
			Validate: func(v any, c *Config) bool {
				n := v.(float64)
				return isInt(n) && n >= 0 && (c.Multiple() || n <= 1)
			},
			InvalidMessage: "invalid value: 'required' must be at least 0 and must be 0 or 1 if 'multiple = false'",
		},
		{Name: MaxHeight, Kind: KindNumber, Default: float64(DefaultMaxHeight), Validate: nonNegativeInt},
		{
			Name: InputName, Kind: KindString,
			Default: DefaultFunc(func(c *Config) any { return fmt.Sprintf("sd%d", c.id) }),
		},
		{Name: InitialValues, Kind: KindArray, Default: []string{}},
		{Name: Textarea, Kind: KindBoolean, Default: false},
	}
	for _, cv := range colorVars {
		list = append(list, &Descriptor{Name: cv.name, Kind: KindString, Default: ""})
	}

	out := make(map[Name]*Descriptor, len(list))
	for _, d := range list {
		out[d.Name] = d
	}
	return out
}

func nonEmptySet(v any, _ *Config) bool {
	set, ok := v.(candidates.Set)
	return ok && !set.Empty()
}

func validOrder(v any, _ *Config) bool {
	s := v.(string)
	return s == string(OrderAsc) || s == string(OrderDesc)
}

func nonNegativeInt(v any, _ *Config) bool {
	n := v.(float64)
	return isInt(n) && n >= 0
}

func isInt(n float64) bool {
	return !math.IsInf(n, 0) && !math.IsNaN(n) && math.Trunc(n) == n
}

// ID returns the instance id this Config was built for.
func (c *Config) ID() int { return c.id }

// Descriptor returns the descriptor for name.
func (c *Config) Descriptor(name Name) (*Descriptor, bool) {
	d, ok := c.descriptors[name]
	return d, ok
}

// Get returns the resolved value of name, or nil for an unknown name.
func (c *Config) Get(name Name) any {
	d, ok := c.descriptors[name]
	if !ok {
		return nil
	}
	return d.Get(c)
}

// Set updates one setting; see Descriptor.Set.
func (c *Config) Set(name Name, raw any) bool {
	d, ok := c.descriptors[name]
	if !ok {
		c.ignore(string(name))
		return false
	}
	return d.Set(raw, c)
}

// PushValue appends value to the candidate set.
func (c *Config) PushValue(value string) bool {
	return c.Set(Values, c.Values().Append(value))
}

// Issues returns every rejected input so far.
func (c *Config) Issues() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Issue{}, c.issues...)
}

// Ignored returns raw keys that matched no setting.
func (c *Config) Ignored() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.ignored...)
}

// Logger returns the logger this Config reports to.
func (c *Config) Logger() zerolog.Logger { return c.logger }

func (c *Config) report(issue Issue) {
	if c == nil {
		logger := logging.Default()
		logger.Error().Str("option", issue.Name.String()).Msg(issue.Message)
		return
	}
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
	c.logger.Error().
		Int("instance", c.id).
		Str("option", issue.Name.String()).
		Str("kind", issue.Kind.String()).
		Msg(issue.Message)
}

func (c *Config) ignore(key string) {
	c.mu.Lock()
	c.ignored = append(c.ignored, key)
	c.mu.Unlock()

	event := c.logger.Warn().Int("instance", c.id).Str("option", key)
	if s, ok := Suggest(key); ok {
		event = event.Str("suggestion", s.String())
	}
	event.Msg("unknown option ignored")
}

func (c *Config) Values() candidates.Set { return c.Get(Values).(candidates.Set) }

func (c *Config) SortOrder() Order { return Order(c.Get(Sort).(string)) }

func (c *Config) Limit() int { return c.intValue(Limit) }

func (c *Config) SimpleInput() bool { return c.boolValue(SimpleInput) }

func (c *Config) Multiple() bool { return c.boolValue(Multiple) }

func (c *Config) EnteredLimit() int { return c.intValue(EnteredLimit) }

func (c *Config) AddValues() bool { return c.boolValue(AddValues) }

func (c *Config) SaveEntered() bool { return c.boolValue(SaveEntered) }

func (c *Config) HideEntered() bool { return c.boolValue(HideEntered) }

func (c *Config) AllowDuplicates() bool { return c.boolValue(AllowDuplicates) }

func (c *Config) CaseSensitive() bool { return c.boolValue(CaseSensitive) }

func (c *Config) Placeholder() string { return c.Get(Placeholder).(string) }

func (c *Config) Required() int { return c.intValue(Required) }

func (c *Config) MaxHeight() int { return c.intValue(MaxHeight) }

func (c *Config) InputName() string { return c.Get(InputName).(string) }

func (c *Config) InitialValues() []string {
	return append([]string{}, c.Get(InitialValues).([]string)...)
}

func (c *Config) Textarea() bool { return c.boolValue(Textarea) }

// CSSVars maps colour overrides to the widget's custom properties.
func (c *Config) CSSVars() map[string]string {
	out := map[string]string{}
	for _, cv := range colorVars {
		if v := strings.TrimSpace(c.Get(cv.name).(string)); v != "" {
			out[cv.css] = v
		}
	}
	return out
}

// Resolved returns every setting's current value in application order.
func (c *Config) Resolved() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(canonical)))
	for _, name := range canonical {
		out.Set(name.String(), c.Get(name))
	}
	return out
}

func (c *Config) boolValue(name Name) bool {
	b, _ := c.Get(name).(bool)
	return b
}

func (c *Config) intValue(name Name) int {
	f, _ := c.Get(name).(float64)
	return int(f)
}
