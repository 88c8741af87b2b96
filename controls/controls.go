package controls

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValue   = errors.New("invalid control value")
)

// KeyBinder registers a callback for a key press. Keys are printable
// characters; letters are matched case-insensitively.
type KeyBinder interface {
	BindKey(key rune, f func())
}

type kind int

const (
	kindBool kind = iota
	kindEnum
)

type control struct {
	name    string
	key     rune
	kind    kind
	on      bool
	options []string
	index   int

	onBool func(bool)
	onEnum func(string)
}

func (c *control) value() string {
	if c.kind == kindBool {
		return fmt.Sprint(c.on)
	}
	return c.options[c.index]
}

// Panel is a set of named, key-bound controls. Callbacks run synchronously on
// whichever goroutine changes the control, which for key bindings is the
// window's event thread.
type Panel struct {
	controls []*control
	byName   map[string]*control
}

func NewPanel() *Panel {
	return &Panel{byName: make(map[string]*control)}
}

func (p *Panel) add(c *control) {
	if _, exists := p.byName[c.name]; exists {
		panic(fmt.Sprintf("controls: duplicate control %q", c.name))
	}
	p.controls = append(p.controls, c)
	p.byName[c.name] = c
}

// AddBool adds a toggle bound to key. onChange receives the new value.
func (p *Panel) AddBool(name string, key rune, initial bool, onChange func(bool)) {
	p.add(&control{name: name, key: key, kind: kindBool, on: initial, onBool: onChange})
}

// AddEnum adds a selector that cycles through options on each press of key.
func (p *Panel) AddEnum(name string, key rune, options []string, initial string, onChange func(string)) {
	if len(options) == 0 {
		panic(fmt.Sprintf("controls: enum %q has no options", name))
	}
	idx := 0
	for i, o := range options {
		if o == initial {
			idx = i
			break
		}
	}
	p.add(&control{name: name, key: key, kind: kindEnum, options: options, index: idx, onEnum: onChange})
}

// Bool returns the current value of a toggle.
func (p *Panel) Bool(name string) (bool, error) {
	c, ok := p.byName[name]
	if !ok || c.kind != kindBool {
		return false, fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	return c.on, nil
}

// Enum returns the selected option of a selector.
func (p *Panel) Enum(name string) (string, error) {
	c, ok := p.byName[name]
	if !ok || c.kind != kindEnum {
		return "", fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	return c.options[c.index], nil
}

// SetBool changes a toggle and fires its callback.
func (p *Panel) SetBool(name string, on bool) error {
	c, ok := p.byName[name]
	if !ok || c.kind != kindBool {
		return fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	c.on = on
	if c.onBool != nil {
		c.onBool(on)
	}
	return nil
}

// SetEnum selects option on a selector and fires its callback.
func (p *Panel) SetEnum(name, option string) error {
	c, ok := p.byName[name]
	if !ok || c.kind != kindEnum {
		return fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	for i, o := range c.options {
		if o == option {
			c.index = i
			if c.onEnum != nil {
				c.onEnum(option)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no option %q", ErrInvalidValue, name, option)
}

// Press simulates the bound key of a control: toggles a bool, cycles an enum.
func (p *Panel) Press(name string) error {
	c, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	p.press(c)
	return nil
}

func (p *Panel) press(c *control) {
	switch c.kind {
	case kindBool:
		c.on = !c.on
		if c.onBool != nil {
			c.onBool(c.on)
		}
	case kindEnum:
		c.index = (c.index + 1) % len(c.options)
		if c.onEnum != nil {
			c.onEnum(c.options[c.index])
		}
	}
}

// Apply fires every callback with the current value, so whatever the callbacks
// drive starts in sync with the panel.
func (p *Panel) Apply() {
	for _, c := range p.controls {
		switch c.kind {
		case kindBool:
			if c.onBool != nil {
				c.onBool(c.on)
			}
		case kindEnum:
			if c.onEnum != nil {
				c.onEnum(c.options[c.index])
			}
		}
	}
}

// Bind registers every control's key on b.
func (p *Panel) Bind(b KeyBinder) {
	for _, c := range p.controls {
		c := c
		if c.key == 0 {
			continue
		}
		b.BindKey(c.key, func() { p.press(c) })
	}
}

// Help describes the key bindings and current values, one control per line.
func (p *Panel) Help() string {
	var sb strings.Builder
	for _, c := range p.controls {
		key := "-"
		if c.key != 0 {
			key = strings.ToUpper(string(c.key))
		}
		fmt.Fprintf(&sb, "  [%s] %-16s %s", key, c.name, c.value())
		if c.kind == kindEnum {
			fmt.Fprintf(&sb, " (%s)", strings.Join(c.options, "|"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
