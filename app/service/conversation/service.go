package conversation

import (
	"context"
	"log/slog"
	"sync"

	"finplay/app/catalog"
	"finplay/app/service/rules"
	"finplay/app/service/transcript"

	"github.com/samber/do"
)

const apologyReply = "Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente ou escolha uma das opções do menu."

// Delegate is the AI collaborator consumed by the dialogue controller.
// Any returned error is treated uniformly as a communication failure.
type Delegate interface {
	Send(ctx context.Context, message string, turns []Turn) (string, error)
}

// Factory builds per-session dialogue controllers sharing the immutable
// collaborators.
type Factory struct {
	store         *catalog.Store
	engine        *rules.Engine
	composer      *Composer
	delegate      Delegate
	transcriptSvc *transcript.Service
}

func NewFactory(di *do.Injector) (*Factory, error) {
	store := do.MustInvoke[*catalog.Store](di)

	return &Factory{
		store:         store,
		engine:        do.MustInvoke[*rules.Engine](di),
		composer:      NewComposer(store),
		delegate:      do.MustInvoke[Delegate](di),
		transcriptSvc: do.MustInvoke[*transcript.Service](di),
	}, nil
}

func (f *Factory) NewConversation(session string) *Service {
	return &Service{
		session:       session,
		store:         f.store,
		engine:        f.engine,
		composer:      f.composer,
		delegate:      f.delegate,
		transcriptSvc: f.transcriptSvc,
		state:         rules.StateInitial,
	}
}

// Service is the dialogue controller of a single conversation. It owns
// the state, the selection context and the context window exclusively;
// the mutex makes turns strictly sequential.
type Service struct {
	session       string
	store         *catalog.Store
	engine        *rules.Engine
	composer      *Composer
	delegate      Delegate
	transcriptSvc *transcript.Service

	mu      sync.Mutex
	state   rules.State
	convCtx rules.Context
	window  ContextWindow
}

// Greeting emits the welcome message and opens the menu.
func (s *Service) Greeting() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = rules.StateAwaitingOption
	s.record(senderBot, rules.MsgWelcome)

	return Result{Messages: []Message{{Text: rules.MsgWelcome, Sender: senderBot}}}
}

func (s *Service) State() rules.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Submit drives one turn end to end. Delegate failures are absorbed into
// a fixed apology reply with state, context and window untouched, so the
// user is free to retry.
func (s *Service) Submit(ctx context.Context, text string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(senderUser, text)

	if s.state == rules.StateAwaitingOrderClose && rules.ShouldFinalize(text) {
		s.state = rules.StateInitial
		s.convCtx = rules.Context{}
		s.record(senderBot, rules.MsgOrderConfirmed)

		return Result{Messages: []Message{{Text: rules.MsgOrderConfirmed, Sender: senderBot}}}
	}

	outcome := s.engine.Classify(text, s.state, s.convCtx)
	if outcome.Delegate {
		return s.delegateTurn(ctx, text)
	}

	s.state = outcome.NextState
	if outcome.NewContext != nil {
		s.convCtx = *outcome.NewContext
	}

	result := Result{Messages: []Message{{Text: outcome.Reply, Sender: senderBot}}}
	if outcome.ShowCatalog {
		result.Catalog = s.directive(outcome.CatalogKind)
	}

	s.record(senderBot, outcome.Reply)

	return result
}

// delegateTurn forwards the message to the AI collaborator together with
// the system instruction for the pre-delegation state and the windowed
// history. The window is mutated only on success.
func (s *Service) delegateTurn(ctx context.Context, text string) Result {
	system := s.composer.Compose(s.state, s.convCtx)
	turns := append([]Turn{{Role: RoleSystem, Text: system}}, s.window.Turns()...)

	reply, err := s.delegate.Send(ctx, text, turns)
	if err != nil {
		slog.Error("Delegate call failed",
			"session", s.session,
			"state", s.state,
			"error", err,
		)

		s.record(senderBot, apologyReply)

		return Result{Messages: []Message{{Text: apologyReply, Sender: senderBot}}}
	}

	s.window.add(RoleUser, text)
	s.window.add(RoleAssistant, reply)
	s.record(senderBot, reply)

	return Result{Messages: []Message{{Text: reply, Sender: senderBot}}}
}

func (s *Service) directive(kind rules.CatalogKind) *Directive {
	switch kind {
	case rules.KindServices:
		return &Directive{Kind: kind, Services: s.store.Entries()}
	case rules.KindSubServices:
		return &Directive{Kind: kind, SubItems: s.store.SubItemsOf(s.convCtx.SelectedItemID)}
	}

	return nil
}

func (s *Service) record(sender, text string) {
	if s.transcriptSvc == nil {
		return
	}

	if err := s.transcriptSvc.Append(s.session, sender, text); err != nil {
		slog.Warn("Failed to append transcript",
			"session", s.session,
			"error", err,
		)
	}
}
