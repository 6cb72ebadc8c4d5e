package extension

import (
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// PrimeMarks applies the editor's pending marks to the cursor right before
// text is inserted, then drops them.
func PrimeMarks(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		InsertText: func(text string) error {
			pending := e.PendingMarks()
			for _, m := range document.AllMarks {
				v, ok := pending[m]
				if !ok {
					continue
				}
				var err error
				if v {
					err = e.AddMark(m)
				} else {
					err = e.RemoveMark(m)
				}
				if err != nil {
					return err
				}
			}
			err := next.InsertText(text)
			e.ClearPendingMarks()
			return err
		},
	}
}
