// Package i18n loads the message catalogs and builds locale-aware printers.
//
// Catalogs live in locales/<tag>.yaml and are embedded at build time. Each
// Localizer owns its own x/text catalog, so nothing is registered globally.
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

// BaseLocale is the fallback locale and must define every key.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every available locale.
type Bundle struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// LoadEmbedded loads the catalogs shipped with the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{messages: map[language.Tag]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		if err := b.add(p, data); err != nil {
			return nil, err
		}
	}

	base := language.MustParse(BaseLocale)
	if _, ok := b.messages[base]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The matcher prefers the first tag on no match, so the base goes first.
	sort.SliceStable(b.tags, func(i, j int) bool { return b.tags[i] == base && b.tags[j] != base })
	b.matcher = language.NewMatcher(b.tags)

	return b, nil
}

func (b *Bundle) add(p string, data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalog %s: %w", p, err)
	}

	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.TrimSpace(file.Locale) != name {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, file.Locale, name)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	tag, err := language.Parse(name)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag: %w", p, err)
	}
	if _, exists := b.messages[tag]; exists {
		return fmt.Errorf("catalog %s: locale %s defined twice", p, tag)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		msgs[key] = value
	}

	b.tags = append(b.tags, tag)
	b.messages[tag] = msgs
	return nil
}

// Locales returns the available locale tags, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// Keys returns the sorted message keys defined for locale.
func (b *Bundle) Keys(locale string) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil
	}
	msgs := b.messages[tag]
	out := make([]string, 0, len(msgs))
	for key := range msgs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Match returns the supported tag closest to locale, falling back to the
// base locale for unknown or malformed input.
func (b *Bundle) Match(locale string) language.Tag {
	requested, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return b.tags[0]
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return b.tags[0]
	}
	return b.tags[index]
}

// Localizer returns a printer for the supported locale closest to locale.
// Keys missing from that locale fall back to the base locale.
func (b *Bundle) Localizer(locale string) (*Localizer, error) {
	tag := b.Match(locale)
	base := language.MustParse(BaseLocale)

	builder := catalog.NewBuilder(catalog.Fallback(base))
	for key, msg := range b.messages[base] {
		if err := builder.SetString(base, key, msg); err != nil {
			return nil, fmt.Errorf("register %s/%s: %w", base, key, err)
		}
		if tag != base {
			if translated, ok := b.messages[tag][key]; ok {
				msg = translated
			}
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", tag, key, err)
			}
		}
	}

	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}
