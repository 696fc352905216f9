// Package prompt builds email-drafting prompts for outreach, keyed by the product being sold.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// GenericKey names the template used when no product-specific one exists
const GenericKey = "generic"

// Data is the contact context interpolated into a template
type Data struct {
	FirstName      string
	Title          string
	AccountName    string
	Product        string
	LastMethod     string
	LastDate       string
	NeverContacted bool
}

// Prompt is a rendered prompt
type Prompt struct {
	Template string
	Subject  string
	Body     string
}

type entry struct {
	subject *template.Template
	body    *template.Template
}

// Generator renders prompts from a fixed template set
type Generator struct {
	entries map[string]entry
}

// NewGenerator returns a generator loaded with the built-in templates
func NewGenerator() (*Generator, error) {
	return NewGeneratorWith(builtinTemplates)
}

// NewGeneratorWith builds a generator from key -> [subject, body] pairs. A generic
// template must be present.
func NewGeneratorWith(templates map[string][2]string) (*Generator, error) {
	if _, ok := templates[GenericKey]; !ok {
		return nil, fmt.Errorf("prompt templates must include %q", GenericKey)
	}

	g := &Generator{entries: make(map[string]entry, len(templates))}
	for key, tmpl := range templates {
		subject, err := template.New(key + ".subject").Parse(tmpl[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject for %q: %w", key, err)
		}
		body, err := template.New(key + ".body").Parse(tmpl[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse body for %q: %w", key, err)
		}
		g.entries[normalizeKey(key)] = entry{subject: subject, body: body}
	}
	return g, nil
}

// Generate renders the template for d.Product, falling back to the generic template
func (g *Generator) Generate(d Data) (*Prompt, error) {
	key := normalizeKey(d.Product)
	e, ok := g.entries[key]
	if !ok || key == "" {
		key = GenericKey
		e = g.entries[GenericKey]
	}

	if d.FirstName == "" {
		d.FirstName = "there"
	}
	if d.Product == "" {
		d.Product = "our solutions"
	}

	var subject, body bytes.Buffer
	if err := e.subject.Execute(&subject, d); err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}
	if err := e.body.Execute(&body, d); err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}

	return &Prompt{
		Template: key,
		Subject:  strings.TrimSpace(subject.String()),
		Body:     strings.TrimSpace(body.String()),
	}, nil
}

// Keys lists the product keys with a dedicated template
func (g *Generator) Keys() []string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	return keys
}

func normalizeKey(product string) string {
	return strings.ToLower(strings.TrimSpace(product))
}
