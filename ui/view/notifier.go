package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// messageBox raises a modal Tk message box.
type messageBox struct{}

func (messageBox) Notify(title, message string) {
	MessageBox(Icon("error"), Title(title), Msg(message))
}
