package tui

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view. When refresh is set, the revealed view
// receives a refetchMsg so it reloads data a mutation may have changed.
type popViewMsg struct {
	refresh bool
}

// refetchMsg tells the receiving view to reload its data.
type refetchMsg struct{}

// statusNoteMsg puts a transient note in the status bar.
type statusNoteMsg struct {
	text  string
	isErr bool
}

// loggedInMsg is sent after a successful login; the app swaps the login
// view for the portal menu.
type loggedInMsg struct{}

// loggedOutMsg drops back to the login screen.
type loggedOutMsg struct{}

// badgeCountMsg carries the unread notification count for the status bar
// badge. A fetch error leaves the previous count in place.
type badgeCountMsg struct {
	count int
	err   error
}
