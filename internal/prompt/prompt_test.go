package prompt_test

import (
	"testing"

	"github.com/outreach-crm/outreach-api/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ProductLookupIgnoresCase(t *testing.T) {
	g, err := prompt.NewGenerator()
	require.NoError(t, err)

	p, err := g.Generate(prompt.Data{
		FirstName:   "Dana",
		Title:       "CNO",
		AccountName: "Mercy Health",
		Product:     "  Telemetry ",
		LastMethod:  "call",
		LastDate:    "2024-01-03",
	})
	require.NoError(t, err)

	assert.Equal(t, "telemetry", p.Template)
	assert.Equal(t, "Remote telemetry capacity at Mercy Health", p.Subject)
	assert.Contains(t, p.Body, "Dana (CNO) at Mercy Health")
	assert.Contains(t, p.Body, "Our last touch was a call on 2024-01-03.")
}

func TestGenerate_FallsBackToGeneric(t *testing.T) {
	g, err := prompt.NewGenerator()
	require.NoError(t, err)

	p, err := g.Generate(prompt.Data{
		FirstName:      "Lee",
		AccountName:    "Banner",
		Product:        "Smart Beds",
		NeverContacted: true,
	})
	require.NoError(t, err)

	assert.Equal(t, prompt.GenericKey, p.Template)
	assert.Equal(t, "Following up with Banner", p.Subject)
	assert.Contains(t, p.Body, "about Smart Beds")
	assert.Contains(t, p.Body, "first touch")
	assert.NotContains(t, p.Body, "()")
}

func TestGenerate_EmptyProductAndName(t *testing.T) {
	g, err := prompt.NewGenerator()
	require.NoError(t, err)

	p, err := g.Generate(prompt.Data{AccountName: "Banner", NeverContacted: true})
	require.NoError(t, err)

	assert.Equal(t, prompt.GenericKey, p.Template)
	assert.Contains(t, p.Body, "to there at Banner about our solutions")
}

func TestNewGeneratorWith_RequiresGeneric(t *testing.T) {
	_, err := prompt.NewGeneratorWith(map[string][2]string{
		"telemetry": {"s", "b"},
	})
	assert.Error(t, err)
}

func TestNewGeneratorWith_RejectsBadTemplate(t *testing.T) {
	_, err := prompt.NewGeneratorWith(map[string][2]string{
		prompt.GenericKey: {"{{.FirstName", "b"},
	})
	assert.Error(t, err)
}
