package responsive

import (
	"fmt"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/objpath"
)

// DisplayPlugin is the plugin path of the display configuration.
const DisplayPlugin = "display"

// VisibilityAlertTitle is the title of alerts raised by SetVisibility.
const VisibilityAlertTitle = "Visibility"

// Display is the display state of an element on one breakpoint.
type Display string

const (
	// DisplayInherit clears the breakpoint entry so the element inherits
	// its display state.
	DisplayInherit Display = ""
	// DisplayNone hides the element.
	DisplayNone Display = "none"
	// DisplayInline shows the element inline.
	DisplayInline Display = "inline"
	// DisplayBlock shows the element as a block.
	DisplayBlock Display = "block"
)

// Valid reports whether d is a known display state.
func (d Display) Valid() bool {
	switch d {
	case DisplayInherit, DisplayNone, DisplayInline, DisplayBlock:
		return true
	default:
		return false
	}
}

// Visible reports whether d shows the element.
func (d Display) Visible() bool {
	return d == DisplayInline || d == DisplayBlock
}

// Label returns the name shown to users for d.
func (d Display) Label() string {
	switch d {
	case DisplayInherit:
		return "(Inherit)"
	case DisplayNone:
		return "Hidden"
	case DisplayInline, DisplayBlock:
		return "Visible"
	default:
		return string(d)
	}
}

// Alerter receives user-visible error messages.
type Alerter interface {
	Alert(title, message string)
}

// SetVisibility writes the display state d at viewport vp unless that
// would leave the element hidden with no visible breakpoint. In that case
// nothing is written, alerter (if any) is told why, and false is returned.
// DisplayInherit resets the entry at vp.
func SetVisibility(ls *LocalStyles, d Display, vp breakpoint.Breakpoint, alerter Alerter) (bool, error) {
	return defaultConfigurator.setVisibility(ls, d, vp, alerter)
}

func (c *Configurator) setVisibility(ls *LocalStyles, d Display, vp breakpoint.Breakpoint, alerter Alerter) (bool, error) {
	if ls == nil {
		return false, invalidArgument("local styles are required")
	}
	if !d.Valid() {
		return false, invalidArgument("unknown display %q", string(d))
	}
	if vp != breakpoint.All && !vp.Valid() {
		return false, invalidArgument("unknown viewport %q", string(vp))
	}

	var value any
	if d != DisplayInherit {
		value = string(d)
	}

	current, _ := objpath.GetAt(ls.Instance, DisplayPlugin)
	next := nextValue(current, value, vp)

	if err := checkVisibility(next); err != nil {
		c.log().WithField("viewport", vp.String()).Warn("rejected display %s: %v", d.Label(), err)
		if alerter != nil {
			alerter.Alert(VisibilityAlertTitle, fmt.Sprintf(
				"Element should be set \"Visible\" on at least one other screen size, before you can set %q on current one.",
				d.Label()))
		}
		return false, nil
	}

	if err := c.SetLocal(ls, DisplayPlugin, value, vp); err != nil {
		return false, err
	}
	return true, nil
}

// checkVisibility enforces that a hidden breakpoint implies a visible one.
func checkVisibility(state any) error {
	var values []any
	if m, ok := objpath.AsMap(state); ok {
		for _, v := range m {
			values = append(values, v)
		}
	} else {
		values = append(values, state)
	}

	hidden, visible := false, false
	for _, v := range values {
		d := toDisplay(v)
		hidden = hidden || d == DisplayNone
		visible = visible || d.Visible()
	}

	if hidden && !visible {
		return ErrConstraintViolation
	}
	return nil
}

func toDisplay(v any) Display {
	switch d := v.(type) {
	case Display:
		return d
	case string:
		return Display(d)
	default:
		return ""
	}
}
