package application

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

// Nav tells the menu driver where to go after an action.
type Nav int

const (
	NavStay Nav = iota // show the same menu again
	NavBack            // return to the parent menu
	NavExit            // leave the menu loop
)

type MenuItem struct {
	Key     string
	Label   string
	Submenu *Menu
	Action  func(ctx context.Context) (Nav, error)
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

// NewMenu numbers items from 1 unless they already carry a key.
func NewMenu(title string, items ...MenuItem) *Menu {
	for i := range items {
		if items[i].Key == "" {
			items[i].Key = strconv.Itoa(i + 1)
		}
	}
	return &Menu{Title: title, Items: items}
}

// Lookup finds the item selected by key. Numeric keys match by value, so
// "01" and "+1" select item 1.
func (m *Menu) Lookup(key string) (MenuItem, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		key = strconv.Itoa(n)
	}
	for _, item := range m.Items {
		if item.Key == key {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Render writes the title and one "key. label" line per item.
func (m *Menu) Render(w io.Writer, st styles) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render(m.Title))
	for _, item := range m.Items {
		fmt.Fprintf(w, "%s. %s\n", item.Key, item.Label)
	}
	fmt.Fprintln(w)
}

// Prompt asks for a choice.
func (m *Menu) Prompt() string {
	return fmt.Sprintf("Enter a choice from 1 to %d: ", len(m.Items))
}

// InvalidChoice is printed when the input matches no item.
func (m *Menu) InvalidChoice() string {
	return fmt.Sprintf("Invalid choice. Please enter a number from 1 to %d.", len(m.Items))
}

/* ----------------------------------------
	MENU TREE LINKING
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		if sub := menu.Items[i].Submenu; sub != nil {
			linkParents(sub, menu)
		}
	}
}

/* ----------------------------------------
	MENU DRIVER
---------------------------------------- */

// runMenu shows root and follows the user through the tree until an action
// returns NavExit or input ends.
func runMenu(ctx context.Context, c *console, root *Menu) error {
	linkParents(root, nil)
	current := root

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		current.Render(c.out, c.st)
		choice, err := c.ask(current.Prompt())
		if err != nil {
			return err
		}

		item, ok := current.Lookup(choice)
		if !ok {
			c.warn(current.InvalidChoice())
			continue
		}

		if item.Submenu != nil {
			current = item.Submenu
			continue
		}
		if item.Action == nil {
			continue
		}

		nav, err := item.Action(ctx)
		if err != nil {
			return err
		}
		switch nav {
		case NavExit:
			return nil
		case NavBack:
			if current.Parent != nil {
				current = current.Parent
			}
		}
	}
}
