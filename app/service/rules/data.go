package rules

// State is the position of a conversation inside the menu flow.
type State string

const (
	StateInitial            State = "initial"
	StateAwaitingOption     State = "awaiting_option"
	StateCatalogBrowsing    State = "catalog_browsing"
	StateSelectingSubItem   State = "selecting_sub_item"
	StateAwaitingOrderClose State = "awaiting_order_close"
)

// CatalogKind tells the host which list of selectable items to render.
type CatalogKind string

const (
	KindServices    CatalogKind = "services"
	KindSubServices CatalogKind = "subservices"
)

// Context is the selection carried across turns. It is replaced
// wholesale whenever an outcome supplies a new one, never merged.
type Context struct {
	SelectedItemID    string
	SelectedSubItemID string
}

// Outcome is the result of classifying one user message.
//
// Delegate reports that the message could not be classified and must be
// routed to the AI collaborator; in that case Reply is empty and the
// remaining fields describe the pre-delegation situation.
type Outcome struct {
	Reply       string
	NextState   State
	ShowCatalog bool
	CatalogKind CatalogKind
	NewContext  *Context
	Delegate    bool
}
