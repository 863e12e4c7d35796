package panel

import (
	"fmt"
	"strings"
)

// Tab names one of the panel's views
type Tab string

const (
	TabControl  Tab = "control"
	TabColor    Tab = "color"
	TabPresets  Tab = "presets"
	TabSegments Tab = "segments"
)

var allTabs = []Tab{TabControl, TabColor, TabPresets, TabSegments}

// Tabs returns every tab in display order
func Tabs() []Tab {
	return append([]Tab(nil), allTabs...)
}

// Title returns the tab bar label
func (t Tab) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// ParseTab resolves a tab by name (case-insensitive)
func ParseTab(name string) (Tab, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range allTabs {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

// TabSet tracks which tab is active. Exactly one is active at any time.
type TabSet struct {
	active Tab
}

// NewTabSet returns a set with the control tab active
func NewTabSet() TabSet {
	return TabSet{active: TabControl}
}

// Activate makes tab the only active tab. Unknown tabs leave the set unchanged.
func (ts *TabSet) Activate(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	ts.active = tab
	return nil
}

// Active returns the active tab
func (ts TabSet) Active() Tab {
	if ts.active == "" {
		return TabControl
	}
	return ts.active
}

// IsActive reports whether tab is the active one
func (ts TabSet) IsActive(tab Tab) bool {
	return ts.Active() == tab
}

// Visible returns the panels currently shown; always exactly one
func (ts TabSet) Visible() []Tab {
	return []Tab{ts.Active()}
}

// Next returns the tab after the active one, wrapping around
func (ts TabSet) Next() Tab {
	return ts.offset(1)
}

// Prev returns the tab before the active one, wrapping around
func (ts TabSet) Prev() Tab {
	return ts.offset(-1)
}

func (ts TabSet) offset(d int) Tab {
	for i, t := range allTabs {
		if t == ts.Active() {
			n := len(allTabs)
			return allTabs[((i+d)%n+n)%n]
		}
	}
	return TabControl
}
