package cmd

// SessionsCmd manages scan sessions
type SessionsCmd struct {
	Add    SessionsAddCmd    `cmd:"add" help:"Add an equipment record to a session directly"`
	Adjust SessionsAdjustCmd `cmd:"adjust" help:"Adjust the quantity of a non-serialized item"`
	Del    SessionsDelCmd    `cmd:"del" help:"Delete a session locally"`
	List   SessionsListCmd   `cmd:"list" help:"List all sessions" default:"1"`
	New    SessionsNewCmd    `cmd:"new" help:"Create a new scan session and make it active"`
	Remove SessionsRemoveCmd `cmd:"remove" help:"Remove an item from a session"`
	Rename SessionsRenameCmd `cmd:"rename" help:"Rename a session"`
	Scan   SessionsScanCmd   `cmd:"scan" help:"Look up a barcode and add it to the active session"`
	Set    SessionsSetCmd    `cmd:"set" help:"Set the active session"`
	View   SessionsViewCmd   `cmd:"view" help:"View a session's items, optionally filtered"`
}
