package ai

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptSpec struct {
	Title  string `yaml:"title"`
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type compiledPrompt struct {
	title  *template.Template
	system *template.Template
	user   *template.Template
}

// Templates renders the embedded prompt set by name.
type Templates struct {
	prompts map[string]compiledPrompt
}

func LoadTemplates() (*Templates, error) {
	return ParseTemplates(promptsYAML)
}

func ParseTemplates(raw []byte) (*Templates, error) {
	var specs map[string]promptSpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	out := &Templates{prompts: make(map[string]compiledPrompt, len(specs))}
	for name, spec := range specs {
		var cp compiledPrompt
		var err error
		if cp.title, err = template.New(name + ".title").Parse(spec.Title); err != nil {
			return nil, fmt.Errorf("prompt %s title: %w", name, err)
		}
		if cp.system, err = template.New(name + ".system").Parse(spec.System); err != nil {
			return nil, fmt.Errorf("prompt %s system: %w", name, err)
		}
		if cp.user, err = template.New(name + ".user").Parse(spec.User); err != nil {
			return nil, fmt.Errorf("prompt %s user: %w", name, err)
		}
		out.prompts[name] = cp
	}
	return out, nil
}

// Render returns the prompt and a default title for the named template.
func (t *Templates) Render(name string, data any) (Prompt, string, error) {
	cp, ok := t.prompts[name]
	if !ok {
		return Prompt{}, "", fmt.Errorf("unknown prompt %q", name)
	}
	title, err := execute(cp.title, data)
	if err != nil {
		return Prompt{}, "", err
	}
	system, err := execute(cp.system, data)
	if err != nil {
		return Prompt{}, "", err
	}
	user, err := execute(cp.user, data)
	if err != nil {
		return Prompt{}, "", err
	}
	return Prompt{System: system, User: user}, title, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
