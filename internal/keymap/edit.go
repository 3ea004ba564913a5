package keymap

import "fmt"

// EditOp is a line-edit primitive carried out by the text-editing widget
type EditOp int

const (
	EditInsertChar EditOp = iota
	EditPrevChar
	EditNextChar
	EditPrevWord
	EditNextWord
	EditStart
	EditEnd
	EditDeletePrevChar
	EditDeleteNextChar
	EditDeletePrevWord
	EditDeleteNextWord
	EditDeleteLine
	EditDeleteTillEnd
)

// EditRequest asks the line editor to perform one operation.
// Char is only meaningful for EditInsertChar.
type EditRequest struct {
	Op   EditOp
	Char rune
}

// InsertRequest returns the request that types r at the cursor
func InsertRequest(r rune) EditRequest {
	return EditRequest{Op: EditInsertChar, Char: r}
}

// ConvertError is returned when an Input action has no line-edit counterpart
type ConvertError struct {
	Action InputAction
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("input action %q is not a line edit", e.Action)
}

var editOps = map[InputAction]EditOp{
	InputPrevChar:       EditPrevChar,
	InputNextChar:       EditNextChar,
	InputPrevWord:       EditPrevWord,
	InputNextWord:       EditNextWord,
	InputStart:          EditStart,
	InputEnd:            EditEnd,
	InputDeletePrevChar: EditDeletePrevChar,
	InputDeleteNextChar: EditDeleteNextChar,
	InputDeletePrevWord: EditDeletePrevWord,
	InputDeleteNextWord: EditDeleteNextWord,
	InputDeleteLine:     EditDeleteLine,
	InputDeleteTillEnd:  EditDeleteTillEnd,
}

// EditRequestFor converts an Input action into the line-edit request it stands for
func EditRequestFor(a InputAction) (EditRequest, error) {
	op, ok := editOps[a]
	if !ok {
		return EditRequest{}, &ConvertError{Action: a}
	}
	return EditRequest{Op: op}, nil
}
