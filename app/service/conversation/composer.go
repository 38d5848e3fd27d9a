package conversation

import (
	"fmt"
	"strings"

	"finplay/app/catalog"
	"finplay/app/service/rules"

	_ "embed"

	"github.com/elliotchance/pie/v2"
)

//go:embed system_prompt.txt
var systemPromptTemplate string

// Composer builds the system instruction for the AI collaborator. The
// output is deterministic for identical state and context.
type Composer struct {
	store *catalog.Store
}

func NewComposer(store *catalog.Store) *Composer {
	return &Composer{store: store}
}

func (c *Composer) Compose(state rules.State, convCtx rules.Context) string {
	services := pie.Map(c.store.Entries(), func(entry catalog.Entry) string {
		return fmt.Sprintf("%s: %s - %s (%s)", entry.Name, entry.Description, entry.Price, entry.Availability)
	})

	templateValues := map[string]string{
		"services":      strings.Join(services, "\n"),
		"extra_context": c.extraContext(state, convCtx),
	}

	prompt := strings.TrimRight(systemPromptTemplate, "\n")
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", value)
	}

	return prompt
}

func (c *Composer) extraContext(state rules.State, convCtx rules.Context) string {
	switch state {
	case rules.StateCatalogBrowsing:
		return "\n\nO usuário está navegando no catálogo de serviços. Ajude-o a escolher um serviço apropriado."

	case rules.StateSelectingSubItem:
		entry, ok := c.store.Lookup(convCtx.SelectedItemID)
		if !ok || !entry.HasSubItems {
			return ""
		}

		subItems := pie.Map(entry.SubItems, func(sub catalog.SubItem) string {
			return fmt.Sprintf("%s - %s", sub.Name, sub.Price)
		})

		return fmt.Sprintf("\n\nO usuário selecionou o serviço \"%s\" e está escolhendo entre:\n%s",
			entry.Name, strings.Join(subItems, "\n"))
	}

	return ""
}
