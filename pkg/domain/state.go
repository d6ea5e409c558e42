package domain

// AppState is the screen the chat shell is currently showing.
type AppState string

const (
	StateWelcome        AppState = "welcome"
	StateSelectingPaper AppState = "selecting-paper"
	StateChat           AppState = "chat"
)

// Valid reports whether s is a known state.
func (s AppState) Valid() bool {
	switch s {
	case StateWelcome, StateSelectingPaper, StateChat:
		return true
	}
	return false
}
