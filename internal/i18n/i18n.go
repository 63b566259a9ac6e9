// Package i18n loads the user-facing message catalogs. Catalog files live
// under locales/<locale>/<namespace>.yaml; en-US is the base locale and the
// fallback for missing keys.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every catalog key must exist in.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every loaded locale.
type Catalog struct {
	builder *catalog.Builder
	locales map[string]map[string]string
}

// Load returns the embedded catalogs.
func Load() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS loads catalogs from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		locales: make(map[string]map[string]string),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", p, err)
		}
		if err := c.add(p, f); err != nil {
			return nil, err
		}
	}
	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}
	return c, nil
}

func (c *Catalog) add(p string, f catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	locale := strings.TrimSpace(f.Locale)
	if locale != dirLocale {
		return fmt.Errorf("i18n: %s: locale %q must match directory %q", p, locale, dirLocale)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: %s: %w", p, err)
	}
	msgs, ok := c.locales[locale]
	if !ok {
		msgs = make(map[string]string)
		c.locales[locale] = msgs
	}
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: %s: blank message key", p)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("i18n: %s: duplicate key %q in %s", p, key, locale)
		}
		msgs[key] = value
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("i18n: %s: key %q: %w", p, key, err)
		}
	}
	return nil
}

// Locales returns the loaded locale identifiers.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for l := range c.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// MissingKeys lists base-locale keys that locale does not translate.
func (c *Catalog) MissingKeys(locale string) []string {
	var missing []string
	for key := range c.locales[BaseLocale] {
		if _, ok := c.locales[locale][key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// Printer returns a Printer for the best match of locale. Locales with no
// match print the base locale.
func (c *Catalog) Printer(locale string) *Printer {
	tags := []language.Tag{language.MustParse(BaseLocale)}
	for _, l := range c.Locales() {
		if l != BaseLocale {
			tags = append(tags, language.MustParse(l))
		}
	}
	_, idx, conf := language.NewMatcher(tags).Match(language.Make(locale))
	tag := tags[0]
	if conf != language.No {
		tag = tags[idx]
	}
	return &Printer{p: message.NewPrinter(tag, message.Catalog(c.builder)), tag: tag}
}

// Printer formats catalog messages for one locale.
type Printer struct {
	p   *message.Printer
	tag language.Tag
}

// Locale returns the locale the Printer resolved to.
func (p *Printer) Locale() string { return p.tag.String() }

// Text returns the message for key formatted with args.
func (p *Printer) Text(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
