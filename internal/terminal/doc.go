// Package terminal hosts an engine in a tcell screen.
//
// The host draws the token stream on a cell grid laid out by
// layout.Monospace: text is drawn as typed, pills are drawn as their labels
// on a colored background, and the selection is highlighted. Keys and mouse
// events are translated into engine operations; clicks go through
// layout.Mapper so they land on atomic boundaries.
//
//	screen, _ := tcell.NewScreen()
//	h := terminal.New(screen, eng, terminal.WithPalette(p))
//	if err := h.Run(ctx); err != nil {
//	    return err
//	}
//	fmt.Println(eng.Text())
//
// Key bindings:
//
//	arrows, Home, End        move (Shift extends, Ctrl/Alt moves by word)
//	Ctrl+Home, Ctrl+End      document start and end
//	Backspace, Delete        delete a grapheme or a whole pill
//	Tab                      insert indentation
//	Ctrl+A                   select all
//	Ctrl+Z, Ctrl+Y           undo, redo
//	Ctrl+D or Esc            finish
package terminal
