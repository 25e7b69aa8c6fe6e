// Package translation resolves dotted message keys ("validation.required")
// against per-locale catalogs loaded from YAML files laid out as
// lang/{locale}/{group}.yaml. A missing key resolves to itself.
package translation

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed lang
var defaultLang embed.FS

// Translator looks up localized lines for a locale with a fallback locale.
// It is safe for concurrent use.
type Translator struct {
	mu       sync.RWMutex
	lines    map[language.Tag]map[string]string
	locale   language.Tag
	fallback language.Tag
}

// New creates an empty Translator for locale, falling back to fallback.
func New(locale, fallback string) *Translator {
	return &Translator{
		lines:    make(map[language.Tag]map[string]string),
		locale:   parseTag(locale),
		fallback: parseTag(fallback),
	}
}

// Default returns a Translator loaded with the bundled English catalog.
func Default() *Translator {
	t := New("en", "en")
	if err := t.LoadFS(defaultLang, "lang"); err != nil {
		panic(fmt.Sprintf("translation: bundled catalog: %v", err))
	}
	return t
}

// Load reads lang/{locale}/{group}.yaml files from dir on disk, on top of
// anything already loaded.
func (t *Translator) Load(dir string) error {
	return t.LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads {root}/{locale}/{group}.yaml files from fsys.
func (t *Translator) LoadFS(fsys fs.FS, root string) error {
	locales, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("translation: read %s: %w", root, err)
	}
	for _, loc := range locales {
		if !loc.IsDir() {
			continue
		}
		dir := path.Join(root, loc.Name())
		files, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return fmt.Errorf("translation: read %s: %w", dir, err)
		}
		for _, f := range files {
			ext := path.Ext(f.Name())
			if f.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			b, err := fs.ReadFile(fsys, path.Join(dir, f.Name()))
			if err != nil {
				return err
			}
			var tree map[string]any
			if err := yaml.Unmarshal(b, &tree); err != nil {
				return fmt.Errorf("translation: parse %s/%s: %w", dir, f.Name(), err)
			}
			group := strings.TrimSuffix(f.Name(), ext)
			t.AddLines(loc.Name(), flatten(group, tree))
		}
	}
	return nil
}

// AddLines registers flattened key → line pairs for locale.
//
//	t.AddLines("en", map[string]string{"validation.required": "The :attribute field is required."})
func (t *Translator) AddLines(locale string, lines map[string]string) {
	tag := parseTag(locale)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lines[tag] == nil {
		t.lines[tag] = make(map[string]string, len(lines))
	}
	for k, v := range lines {
		t.lines[tag][k] = v
	}
}

// Trans returns the line for key in the current locale, then the fallback
// locale. The key itself is returned when neither has it.
func (t *Translator) Trans(key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, tag := range []language.Tag{t.match(t.locale), t.fallback} {
		if line, ok := t.lines[tag][key]; ok {
			return line
		}
	}
	return key
}

// Has reports whether key resolves in the current or fallback locale.
func (t *Translator) Has(key string) bool { return t.Trans(key) != key }

// Locale returns the current locale.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale.String()
}

// SetLocale switches the current locale.
func (t *Translator) SetLocale(locale string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locale = parseTag(locale)
}

// match picks the best loaded catalog for want ("en-GB" → "en").
func (t *Translator) match(want language.Tag) language.Tag {
	if _, ok := t.lines[want]; ok || len(t.lines) == 0 {
		return want
	}
	tags := make([]language.Tag, 0, len(t.lines)+1)
	tags = append(tags, t.fallback)
	for tag := range t.lines {
		if tag != t.fallback {
			tags = append(tags, tag)
		}
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return t.fallback
	}
	return tags[idx]
}

func parseTag(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

func flatten(prefix string, tree map[string]any) map[string]string {
	out := make(map[string]string)
	var walk func(string, any)
	walk = func(key string, v any) {
		switch node := v.(type) {
		case map[string]any:
			for k, child := range node {
				walk(key+"."+k, child)
			}
		case nil:
		default:
			out[key] = fmt.Sprint(node)
		}
	}
	walk(prefix, tree)
	return out
}
