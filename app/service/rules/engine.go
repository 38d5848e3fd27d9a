package rules

import (
	"fmt"
	"strings"

	"finplay/app/catalog"

	"github.com/samber/do"
)

// Engine classifies user messages against the conversation state and the
// static catalog. It holds no conversation state of its own: Classify is
// a pure function of its arguments.
type Engine struct {
	store *catalog.Store
}

func New(di *do.Injector) (*Engine, error) {
	return &Engine{
		store: do.MustInvoke[*catalog.Store](di),
	}, nil
}

// Classify maps one user message to either a deterministic reply with a
// state transition, or a directive to delegate the turn to the AI
// collaborator. Matching is case-insensitive and whitespace-trimmed;
// catalog ids are matched exactly, never fuzzily.
func (e *Engine) Classify(message string, state State, convCtx Context) Outcome {
	msg := normalize(message)

	if isExit(msg) {
		return Outcome{Reply: MsgFarewell, NextState: StateInitial}
	}

	switch state {
	case StateInitial, StateAwaitingOption:
		return e.classifyMenu(msg)
	case StateCatalogBrowsing:
		return e.classifyCatalog(msg)
	case StateSelectingSubItem:
		return e.classifySubItem(msg, convCtx)
	case StateAwaitingOrderClose:
		// any token closes the order, finalize words included
		return Outcome{Reply: MsgOrderConfirmed, NextState: StateInitial, NewContext: &Context{}}
	}

	return Outcome{NextState: state, Delegate: true}
}

func (e *Engine) classifyMenu(msg string) Outcome {
	switch msg {
	case "1", "atendimento":
		return Outcome{Reply: MsgSupport, NextState: StateInitial}

	case "2", "servicos", "serviços", "servico", "serviço":
		return Outcome{
			Reply:       MsgServices,
			NextState:   StateCatalogBrowsing,
			ShowCatalog: true,
			CatalogKind: KindServices,
		}

	case "3", "financeiro":
		return Outcome{Reply: MsgBilling, NextState: StateInitial}
	}

	return Outcome{NextState: StateAwaitingOption, Delegate: true}
}

func (e *Engine) classifyCatalog(msg string) Outcome {
	if msg == "voltar" || msg == "menu" {
		return Outcome{Reply: MsgWelcome, NextState: StateAwaitingOption}
	}

	if entry, ok := e.store.Lookup(msg); ok {
		if entry.HasSubItems {
			return Outcome{
				Reply:       MsgSelectSubItem,
				NextState:   StateSelectingSubItem,
				ShowCatalog: true,
				CatalogKind: KindSubServices,
				NewContext:  &Context{SelectedItemID: entry.ID},
			}
		}

		return Outcome{
			Reply:      confirmEntryReply(entry),
			NextState:  StateAwaitingOrderClose,
			NewContext: &Context{SelectedItemID: entry.ID},
		}
	}

	return Outcome{NextState: StateCatalogBrowsing, Delegate: true}
}

func (e *Engine) classifySubItem(msg string, convCtx Context) Outcome {
	if msg == "voltar" {
		return Outcome{
			Reply:       MsgServices,
			NextState:   StateCatalogBrowsing,
			ShowCatalog: true,
			CatalogKind: KindServices,
		}
	}

	entry, ok := e.store.Lookup(convCtx.SelectedItemID)
	if !ok || !entry.HasSubItems {
		// stored selection no longer resolves against the catalog,
		// treat the message as a classification fallback
		return Outcome{NextState: StateSelectingSubItem, Delegate: true}
	}

	if sub, ok := e.store.SubItem(entry.ID, msg); ok {
		return Outcome{
			Reply:     confirmSubItemReply(entry, sub),
			NextState: StateAwaitingOrderClose,
			NewContext: &Context{
				SelectedItemID:    entry.ID,
				SelectedSubItemID: sub.ID,
			},
		}
	}

	return Outcome{NextState: StateSelectingSubItem, Delegate: true}
}

// ShouldFinalize reports whether a message explicitly closes an order.
func ShouldFinalize(message string) bool {
	switch normalize(message) {
	case "finalizar", "concluir", "confirmar":
		return true
	}

	return false
}

func confirmEntryReply(entry catalog.Entry) string {
	return fmt.Sprintf("📦 Serviço \"%s\" adicionado!\n\n%s\n\nDeseja adicionar mais algum serviço ou finalizar?\n(Digite \"finalizar\" para concluir)",
		entry.Name, entry.Price)
}

func confirmSubItemReply(entry catalog.Entry, sub catalog.SubItem) string {
	return fmt.Sprintf("📦 Serviço \"%s - %s\" adicionado!\n\n%s\nDuração estimada: %s\n\nDeseja adicionar mais algum serviço ou finalizar?\n(Digite \"finalizar\" para concluir)",
		entry.Name, sub.Name, sub.Price, sub.Duration)
}

func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func isExit(msg string) bool {
	return msg == "sair" || msg == "exit"
}
