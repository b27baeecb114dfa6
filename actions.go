package lookapp

// Action is one transition of the conversation store. The vocabulary is a
// closed tagged union: the reducer switches exhaustively over the concrete
// types below and treats anything else as a no-op.
type Action interface {
	isAction()
}

// AddUserMessage appends a new conversation group for a submitted query and
// makes it the active group. Text may be empty only when Image is present;
// the store does not validate this.
type AddUserMessage struct {
	Text  string
	Image string
}

// AddAIMessage sets the AI response on the active group. Applied at most
// once per group in normal use; a no-op when no group is active.
type AddAIMessage struct {
	Text string
}

// SetProducts replaces the active group's product list wholesale and records
// the gateway session id. Used for the first population of a group.
type SetProducts struct {
	Products  []Product
	SessionID string
}

// AddProducts appends a result batch to the active group, reveals the first
// page of the new batch, resets the group's page counter to 1, and records
// the gateway session id.
type AddProducts struct {
	Products  []Product
	SessionID string
}

// GetMoreProducts reveals the next pagination slice of the group identified
// by GroupID. The slice is written to the active group; in normal use the
// two are the same group. A no-op when GroupID matches nothing.
type GetMoreProducts struct {
	GroupID string
}

// SetLoading sets the in-flight flag.
type SetLoading struct {
	Loading bool
}

// SetError sets the surfaced error message. An empty value clears it.
type SetError struct {
	Message string
}

// SetInputType records how the current query was entered.
type SetInputType struct {
	Kind InputType
}

// ToggleUsedItems flips the second-hand results flag.
type ToggleUsedItems struct{}

// TogglePersonalization flips the profile-aware search flag.
type TogglePersonalization struct{}

// ToggleSignInModal flips the sign-in modal flag.
type ToggleSignInModal struct{}

// RemoveUserMessage is part of the action vocabulary for compatibility.
//
// Deprecated: it manipulated a flat chat history that no longer exists and
// is now a no-op.
type RemoveUserMessage struct{}

// RemoveAIMessage is part of the action vocabulary for compatibility.
//
// Deprecated: it manipulated a flat chat history that no longer exists and
// is now a no-op.
type RemoveAIMessage struct{}

// ClearChat is part of the action vocabulary for compatibility. It never
// cleared conversation groups.
//
// Deprecated: the flat structures it cleared no longer exist; it is a no-op.
type ClearChat struct{}

// Reset restores the store to its initial state. This is the only action
// that drops conversation groups and the session id.
type Reset struct{}

func (AddUserMessage) isAction()        {}
func (AddAIMessage) isAction()          {}
func (SetProducts) isAction()           {}
func (AddProducts) isAction()           {}
func (GetMoreProducts) isAction()       {}
func (SetLoading) isAction()            {}
func (SetError) isAction()              {}
func (SetInputType) isAction()          {}
func (ToggleUsedItems) isAction()       {}
func (TogglePersonalization) isAction() {}
func (ToggleSignInModal) isAction()     {}
func (RemoveUserMessage) isAction()     {}
func (RemoveAIMessage) isAction()       {}
func (ClearChat) isAction()             {}
func (Reset) isAction()                 {}
