package console

import (
	"context"
	"errors"
	"strings"
)

// ExitKey is the selection that leaves the menu
const ExitKey = "0"

// Action is run when its menu item is selected
type Action func(ctx context.Context) error

// MenuItem binds a selection key to an action
type MenuItem struct {
	Key      string
	LabelKey string
	Action   Action
}

// Menu is the interactive selection loop
type Menu struct {
	p     *Prompter
	items []MenuItem
}

// NewMenu creates a menu over the given items. The exit item is implicit.
func NewMenu(p *Prompter, items ...MenuItem) *Menu {
	return &Menu{p: p, items: items}
}

// Run shows the menu until the exit key is chosen or input ends. An action
// error stops the loop and is returned.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.show()
		m.p.Prompt("menu.prompt")

		line, err := m.p.ReadLine()
		if errors.Is(err, ErrEndOfInput) {
			return nil
		}
		if err != nil {
			return err
		}

		choice := strings.TrimSpace(line)
		if choice == "" {
			continue
		}
		if choice == ExitKey {
			return nil
		}

		item, ok := m.lookup(choice)
		if !ok {
			m.p.Println(m.p.loc.T("menu.invalid", choice))
			continue
		}
		if err := item.Action(ctx); err != nil {
			return err
		}
	}
}

func (m *Menu) show() {
	if !m.p.interactive {
		return
	}
	m.p.Println("")
	m.p.Println(m.p.loc.T("menu.title"))
	for _, item := range m.items {
		m.p.Println(m.p.loc.T(item.LabelKey))
	}
	m.p.Println(m.p.loc.T("menu.exit"))
}

func (m *Menu) lookup(key string) (MenuItem, bool) {
	for _, item := range m.items {
		if item.Key == key {
			return item, true
		}
	}
	return MenuItem{}, false
}
