// Package i18n holds the label tables and number formats used when
// presenting damage figures.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

var supported = []language.Tag{language.English, language.Italian}

type Translator struct {
	tag      language.Tag
	labels   map[string]string
	printer  *message.Printer
	collator *collate.Collator
}

// New builds a translator for lang. Unknown languages fall back to English.
// overridePath, when set, points to a YAML label table merged over the
// embedded one.
func New(lang, overridePath string) (*Translator, error) {
	tag, _ := language.MatchStrings(language.NewMatcher(supported), lang)
	base, _ := tag.Base()

	labels, err := readLabels(base.String())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(overridePath) != "" {
		b, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read translations (%s): %w", overridePath, err)
		}
		extra := make(map[string]string)
		if err := yaml.Unmarshal(b, &extra); err != nil {
			return nil, fmt.Errorf("parse translations (%s): %w", overridePath, err)
		}
		for k, v := range extra {
			labels[k] = v
		}
	}

	return &Translator{
		tag:      tag,
		labels:   labels,
		printer:  message.NewPrinter(tag),
		collator: collate.New(tag, collate.IgnoreCase),
	}, nil
}

func readLabels(base string) (map[string]string, error) {
	b, err := locales.ReadFile("locales/" + base + ".yaml")
	if err != nil {
		b, err = locales.ReadFile("locales/en.yaml")
		if err != nil {
			return nil, err
		}
	}
	out := make(map[string]string)
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse embedded locale %s: %w", base, err)
	}
	return out, nil
}

func (t *Translator) Language() language.Tag { return t.tag }

// T returns the label for key, or key itself when there is none.
func (t *Translator) T(key string) string {
	if v, ok := t.labels[key]; ok {
		return v
	}
	return key
}

func (t *Translator) Round1(v float64) string {
	return t.printer.Sprintf("%.1f", v)
}

func (t *Translator) F2(v float64) string {
	return t.printer.Sprintf("%.2f", v)
}

// Pct formats a 0..1 fraction as a percentage with one decimal.
func (t *Translator) Pct(v float64) string {
	return t.printer.Sprintf("%.1f%%", v*100)
}

// Compare orders translated names for the translator's locale.
func (t *Translator) Compare(a, b string) int {
	return t.collator.CompareString(t.T(a), t.T(b))
}
