package conversation

import (
	"finplay/app/catalog"
	"finplay/app/service/rules"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one entry of the conversational context forwarded to the AI
// collaborator. Immutable once appended.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

const (
	senderBot  = "bot"
	senderUser = "user"
)

// Message is one display message emitted to the host UI.
type Message struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// Directive instructs the host to render a selectable list of items.
// Exactly one of Services and SubItems is populated, matching Kind.
type Directive struct {
	Kind     rules.CatalogKind `json:"kind"`
	Services []catalog.Entry   `json:"services,omitempty"`
	SubItems []catalog.SubItem `json:"subItems,omitempty"`
}

// Result is the outcome of one fully resolved turn.
type Result struct {
	Messages []Message  `json:"messages"`
	Catalog  *Directive `json:"catalog,omitempty"`
}
