package core

// MenuOption is an entry of the main menu.
type MenuOption int

const (
	MenuList MenuOption = iota + 1
	MenuAdd
	MenuRename
	MenuRemove
	MenuOrganize
	MenuExit
)

func (o MenuOption) String() string {
	switch o {
	case MenuList:
		return "List documents"
	case MenuAdd:
		return "Add document"
	case MenuRename:
		return "Rename document"
	case MenuRemove:
		return "Remove document"
	case MenuOrganize:
		return "Organize files"
	case MenuExit:
		return "Exit"
	}
	return "Unknown"
}

// MenuOptions lists the main menu in display order.
var MenuOptions = []MenuOption{MenuList, MenuAdd, MenuRename, MenuRemove, MenuOrganize, MenuExit}

// AddMode is how the user wants to locate a file to add.
type AddMode int

const (
	AddModeBack AddMode = iota
	AddModePicker
	AddModeManual
)

// Host is the capability the interactive front end provides.
// Implementations own every terminal or windowing concern; nothing in the
// library core depends on a UI toolkit.
type Host interface {
	// ChooseMenuOption blocks until the user picks a main menu entry.
	ChooseMenuOption() (MenuOption, error)

	// ChooseAddMode asks how the file to add should be located.
	ChooseAddMode() (AddMode, error)

	// PickFile opens a file picker. ok is false when the user cancelled.
	PickFile() (path string, ok bool, err error)

	// Input asks for a line of text.
	Input(label string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(prompt string) (bool, error)

	// SelectEntry lets the user choose one of entries. ok is false on "back".
	SelectEntry(label string, entries []Entry) (e Entry, ok bool, err error)
}
