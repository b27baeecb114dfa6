package lookapp

import "time"

// Reduce applies a single action to a state snapshot and returns the next
// state. It is a pure transition: the input state is never mutated, no
// action can fail, and anything the switch does not recognize returns the
// input unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddUserMessage:
		next := state.clone()
		group := ConversationGroup{
			ID: NewGroupID(),
			UserMessage: &Message{
				Role:      RoleUser,
				Text:      a.Text,
				Image:     a.Image,
				Timestamp: time.Now(),
			},
			Products:   []Product{},
			UIProducts: []Product{},
			Pagination: Pagination{Page: 1, Limit: DefaultPageLimit},
		}
		next.Groups = append(next.Groups, group)
		next.ActiveGroupID = group.ID
		return next

	case AddAIMessage:
		next := state.clone()
		group := next.activeGroup()
		if group == nil {
			return state
		}
		group.AIMessage = &Message{
			Role:      RoleAssistant,
			Text:      a.Text,
			Timestamp: time.Now(),
		}
		return next

	case SetProducts:
		next := state.clone()
		group := next.activeGroup()
		if group == nil {
			return state
		}
		group.Products = append([]Product{}, a.Products...)
		group.UIProducts = append([]Product{}, group.Products[:revealLen(*group)]...)
		next.SessionID = a.SessionID
		return next

	case AddProducts:
		next := state.clone()
		group := next.activeGroup()
		if group == nil {
			return state
		}
		group.Products = append(group.Products, a.Products...)
		reveal := min(group.Pagination.Limit, len(a.Products))
		group.UIProducts = append(group.UIProducts, a.Products[:reveal]...)
		// Page counts reveal steps within the current batch, so a fresh
		// batch starts back at 1. The limit fixed at creation stays.
		group.Pagination.Page = 1
		next.SessionID = a.SessionID
		return next

	case GetMoreProducts:
		next := state.clone()
		source := next.group(a.GroupID)
		target := next.activeGroup()
		if source == nil || target == nil {
			return state
		}
		from := len(source.UIProducts)
		to := min(from+source.Pagination.Limit, len(source.Products))
		if from < to {
			target.UIProducts = append(target.UIProducts, source.Products[from:to]...)
		}
		// The page advances even when everything is already revealed.
		target.Pagination.Page++
		return next

	case SetLoading:
		next := state.clone()
		next.IsLoading = a.Loading
		return next

	case SetError:
		next := state.clone()
		next.Error = a.Message
		return next

	case SetInputType:
		next := state.clone()
		next.InputType = a.Kind
		return next

	case ToggleUsedItems:
		next := state.clone()
		next.UsedItems = !next.UsedItems
		return next

	case TogglePersonalization:
		next := state.clone()
		next.Personalization = !next.Personalization
		return next

	case ToggleSignInModal:
		next := state.clone()
		next.ShowSignInModal = !next.ShowSignInModal
		return next

	case RemoveUserMessage, RemoveAIMessage, ClearChat:
		// Vestigial flat-history actions. The structures they touched were
		// dropped; they remain recognized so dispatching them stays safe.
		return state

	case Reset:
		return initialState()

	default:
		return state
	}
}

// revealLen is the prefix length the pagination cursor entitles a group to
// reveal, clamped to what actually exists.
func revealLen(g ConversationGroup) int {
	return min(g.Pagination.Limit*g.Pagination.Page, len(g.Products))
}
