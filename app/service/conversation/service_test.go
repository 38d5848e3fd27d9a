package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"finplay/app/catalog"
	"finplay/app/service/rules"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDelegate struct {
	reply string
	err   error

	messages []string
	turns    [][]Turn
}

func (d *stubDelegate) Send(_ context.Context, message string, turns []Turn) (string, error) {
	d.messages = append(d.messages, message)
	d.turns = append(d.turns, turns)

	if d.err != nil {
		return "", d.err
	}

	return d.reply, nil
}

func newTestService(t *testing.T, delegate Delegate) *Service {
	t.Helper()

	di := do.New()
	do.Provide(di, catalog.New)
	do.Provide(di, rules.New)

	store := do.MustInvoke[*catalog.Store](di)

	return &Service{
		session:  "test",
		store:    store,
		engine:   do.MustInvoke[*rules.Engine](di),
		composer: NewComposer(store),
		delegate: delegate,
		state:    rules.StateAwaitingOption,
	}
}

func TestGreeting(t *testing.T) {
	svc := newTestService(t, &stubDelegate{})
	svc.state = rules.StateInitial

	result := svc.Greeting()

	require.Len(t, result.Messages, 1)
	assert.Equal(t, rules.MsgWelcome, result.Messages[0].Text)
	assert.Equal(t, senderBot, result.Messages[0].Sender)
	assert.Nil(t, result.Catalog)
	assert.Equal(t, rules.StateAwaitingOption, svc.State())
}

func TestSubmit_DeterministicPathSkipsDelegate(t *testing.T) {
	delegate := &stubDelegate{}
	svc := newTestService(t, delegate)

	result := svc.Submit(context.Background(), "servicos")

	require.Len(t, result.Messages, 1)
	assert.Equal(t, rules.MsgServices, result.Messages[0].Text)
	require.NotNil(t, result.Catalog)
	assert.Equal(t, rules.KindServices, result.Catalog.Kind)
	assert.Len(t, result.Catalog.Services, 7)
	assert.Empty(t, result.Catalog.SubItems)

	assert.Equal(t, rules.StateCatalogBrowsing, svc.State())
	assert.Empty(t, delegate.messages)
	assert.Zero(t, svc.window.Len())
}

func TestSubmit_SubItemDirective(t *testing.T) {
	svc := newTestService(t, &stubDelegate{})
	svc.state = rules.StateCatalogBrowsing

	result := svc.Submit(context.Background(), "manicure")

	require.NotNil(t, result.Catalog)
	assert.Equal(t, rules.KindSubServices, result.Catalog.Kind)
	assert.Len(t, result.Catalog.SubItems, 3)
	assert.Empty(t, result.Catalog.Services)
	assert.Equal(t, "manicure", svc.convCtx.SelectedItemID)
}

func TestSubmit_DelegationSuccess(t *testing.T) {
	delegate := &stubDelegate{reply: "Claro! Posso ajudar com isso."}
	svc := newTestService(t, delegate)

	result := svc.Submit(context.Background(), "vocês atendem aos domingos?")

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Claro! Posso ajudar com isso.", result.Messages[0].Text)
	assert.Nil(t, result.Catalog)

	// state is never adopted on a delegated turn
	assert.Equal(t, rules.StateAwaitingOption, svc.State())

	assert.Equal(t, 2, svc.window.Len())
	turns := svc.window.Turns()
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, RoleAssistant, turns[1].Role)

	require.Len(t, delegate.turns, 1)
	require.NotEmpty(t, delegate.turns[0])
	assert.Equal(t, RoleSystem, delegate.turns[0][0].Role)
	assert.Contains(t, delegate.turns[0][0].Text, "FinPlay")
}

func TestSubmit_DelegationFailure(t *testing.T) {
	delegate := &stubDelegate{err: errors.New("provider unreachable")}
	svc := newTestService(t, delegate)
	svc.state = rules.StateCatalogBrowsing
	svc.convCtx = rules.Context{SelectedItemID: "pedreiro"}

	result := svc.Submit(context.Background(), "tem desconto?")

	require.Len(t, result.Messages, 1)
	assert.Equal(t, apologyReply, result.Messages[0].Text)
	assert.Nil(t, result.Catalog)

	assert.Equal(t, rules.StateCatalogBrowsing, svc.State())
	assert.Equal(t, rules.Context{SelectedItemID: "pedreiro"}, svc.convCtx)
	assert.Zero(t, svc.window.Len())
}

func TestSubmit_FailureThenRetry(t *testing.T) {
	delegate := &stubDelegate{err: errors.New("timeout")}
	svc := newTestService(t, delegate)

	svc.Submit(context.Background(), "primeira tentativa")
	assert.Zero(t, svc.window.Len())

	delegate.err = nil
	delegate.reply = "agora sim"

	result := svc.Submit(context.Background(), "segunda tentativa")
	assert.Equal(t, "agora sim", result.Messages[0].Text)
	assert.Equal(t, 2, svc.window.Len())
}

func TestSubmit_WindowStaysBounded(t *testing.T) {
	delegate := &stubDelegate{reply: "ok"}
	svc := newTestService(t, delegate)

	for i := 0; i < 10; i++ {
		svc.Submit(context.Background(), fmt.Sprintf("pergunta %d", i))
	}

	assert.Equal(t, windowSize, svc.window.Len())

	// system turn plus at most windowSize history turns
	last := delegate.turns[len(delegate.turns)-1]
	assert.LessOrEqual(t, len(last), windowSize+1)

	// oldest turns were dropped
	for _, turn := range svc.window.Turns() {
		assert.NotContains(t, turn.Text, "pergunta 0")
	}
}

func TestSubmit_FinalizeShortCircuit(t *testing.T) {
	delegate := &stubDelegate{}
	svc := newTestService(t, delegate)
	svc.state = rules.StateAwaitingOrderClose
	svc.convCtx = rules.Context{SelectedItemID: "cabeleireira", SelectedSubItemID: "corte"}

	result := svc.Submit(context.Background(), " Finalizar ")

	require.Len(t, result.Messages, 1)
	assert.Equal(t, rules.MsgOrderConfirmed, result.Messages[0].Text)
	assert.Equal(t, rules.StateInitial, svc.State())
	assert.Equal(t, rules.Context{}, svc.convCtx)
	assert.Empty(t, delegate.messages)
}

func TestSubmit_FullOrderRoundTrip(t *testing.T) {
	svc := newTestService(t, &stubDelegate{})

	result := svc.Submit(context.Background(), "servicos")
	assert.Equal(t, rules.StateCatalogBrowsing, svc.State())
	require.NotNil(t, result.Catalog)

	result = svc.Submit(context.Background(), "cabeleireira")
	assert.Equal(t, rules.StateSelectingSubItem, svc.State())
	require.NotNil(t, result.Catalog)
	assert.Equal(t, rules.KindSubServices, result.Catalog.Kind)

	result = svc.Submit(context.Background(), "corte")
	assert.Equal(t, rules.StateAwaitingOrderClose, svc.State())
	assert.Contains(t, result.Messages[0].Text, "R$ 40,00")
	assert.Nil(t, result.Catalog)

	result = svc.Submit(context.Background(), "finalizar")
	assert.Equal(t, rules.MsgOrderConfirmed, result.Messages[0].Text)
	assert.Equal(t, rules.StateInitial, svc.State())
	assert.Equal(t, rules.Context{}, svc.convCtx)
}

func TestSubmit_DelegateSeesPreDelegationState(t *testing.T) {
	delegate := &stubDelegate{reply: "resposta"}
	svc := newTestService(t, delegate)
	svc.state = rules.StateSelectingSubItem
	svc.convCtx = rules.Context{SelectedItemID: "cabeleireira"}

	svc.Submit(context.Background(), "qual é o mais barato?")

	require.Len(t, delegate.turns, 1)
	system := delegate.turns[0][0]
	assert.Equal(t, RoleSystem, system.Role)
	assert.True(t, strings.Contains(system.Text, "Corte - R$ 40,00"), "system prompt should list the sub-items")

	assert.Equal(t, rules.StateSelectingSubItem, svc.State())
	assert.Equal(t, "cabeleireira", svc.convCtx.SelectedItemID)
}
