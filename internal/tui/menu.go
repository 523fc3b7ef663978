package tui

import "strings"

type menuAction int

const (
	actionEdit menuAction = iota
	actionAppend
	actionReload
	actionWarnings
	actionQuit
)

// menuItem is one horizontal menu entry. Its hotkey is the lowercased
// first letter of the name.
type menuItem struct {
	action      menuAction
	name        string
	description string
}

func (it menuItem) key() string {
	return strings.ToLower(it.name[:1])
}

func (it menuItem) render(first, selected bool) string {
	text := "(" + it.name[:1] + ")" + it.name[1:] + " "
	if !first {
		text = " " + text
	}
	if selected {
		return menuSelectedStyle.Render(text)
	}
	return menuStyle.Render(text)
}

type menu struct {
	items    []menuItem
	selected int
}

func newMenu() menu {
	return menu{items: []menuItem{
		{actionEdit, "Edit", "Edit the file."},
		{actionAppend, "Append", "Add current date to the file."},
		{actionReload, "Reload", "Reload file."},
		{actionWarnings, "Warnings", "Display warnings."},
		{actionQuit, "Quit", "Quit the program."},
	}}
}

func (m *menu) left() {
	if m.selected == 0 {
		m.selected = len(m.items) - 1
	} else {
		m.selected--
	}
}

func (m *menu) right() {
	m.selected++
	if m.selected >= len(m.items) {
		m.selected = 0
	}
}

// selectKey moves the selection to the item with the given hotkey and
// reports whether one matched.
func (m *menu) selectKey(key string) (menuAction, bool) {
	for i, it := range m.items {
		if it.key() == key {
			m.selected = i
			return it.action, true
		}
	}
	return 0, false
}

func (m menu) current() menuAction {
	return m.items[m.selected].action
}

func (m menu) description() string {
	return m.items[m.selected].description
}

func (m menu) View() string {
	var b strings.Builder
	for i, it := range m.items {
		if i > 0 {
			b.WriteString("    ")
		}
		b.WriteString(it.render(i == 0, i == m.selected))
	}
	return b.String()
}
