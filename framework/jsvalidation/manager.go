package jsvalidation

import (
	"html/template"

	"github.com/go-json-experiment/json"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ViewData is what the script template receives.
type ViewData struct {
	Selector string            `json:"selector"`
	Rules    *Result           `json:"rules"`
	Messages map[string]string `json:"messages"`
}

// Renderer turns view data into the client script for a named view.
type Renderer interface {
	RenderScript(view string, data ViewData) (template.HTML, error)
}

// Manager holds a translated validator together with the form selector
// and view used to render it.
type Manager struct {
	selector string
	view     string
	js       *JavascriptValidation

	cache    *lru.Cache[string, *Result]
	cacheKey string
}

// Selector sets the form selector and returns m.
func (m *Manager) Selector(selector string) *Manager {
	if selector != "" {
		m.selector = selector
	}
	return m
}

// View returns the template name used to render the script.
func (m *Manager) View() string { return m.view }

// Rules returns the translated client rules.
func (m *Manager) Rules() *Result {
	if m.cache != nil {
		if r, ok := m.cache.Get(m.cacheKey); ok {
			return r
		}
	}
	r := m.js.Rules()
	if m.cache != nil {
		m.cache.Add(m.cacheKey, r)
	}
	return r
}

// ValidationData returns the view data for the script template.
func (m *Manager) ValidationData() ViewData {
	return ViewData{
		Selector: m.selector,
		Rules:    m.Rules(),
		Messages: map[string]string{},
	}
}

// JSON encodes ValidationData.
func (m *Manager) JSON() ([]byte, error) {
	return json.Marshal(m.ValidationData())
}

// Render produces the client script through r using m's view.
func (m *Manager) Render(r Renderer) (template.HTML, error) {
	return r.RenderScript(m.view, m.ValidationData())
}
