package prompt

import (
	"errors"
	"fmt"
	"strings"

	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	messageStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("7"))
)

// TerminalPrompter renders prompts with huh forms directly in the terminal.
type TerminalPrompter struct{}

// NewTerminalPrompter returns a Prompter backed by huh terminal forms.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// ChooseOne presents a single-choice select menu.
func (p *TerminalPrompter) ChooseOne(title, message string, options []Option) (string, error) {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(message).
			Options(huhOptions...).
			Value(&value),
	))

	if err := form.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return value, nil
}

// ChooseMany presents a multi-select checklist, all items unchecked.
func (p *TerminalPrompter) ChooseMany(title, message string, options []string) ([]string, error) {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var values []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Description(message).
			Options(huhOptions...).
			Value(&values),
	))

	if err := form.Run(); err != nil {
		return nil, mapHuhErr(err)
	}
	return values, nil
}

// InputText presents a free-text input.
func (p *TerminalPrompter) InputText(title, message, placeholder string) (string, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(message).
			Placeholder(placeholder).
			Value(&text),
	))

	if err := form.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return strings.TrimSpace(text), nil
}

// Notify prints a styled status message to the terminal.
func (p *TerminalPrompter) Notify(title, message string) {
	fmt.Println(titleStyle.Render(title))
	if message != "" {
		fmt.Println(messageStyle.Render(message))
	}
}

// mapHuhErr translates huh's abort sentinel into the package's own.
func mapHuhErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

var _ Prompter = (*TerminalPrompter)(nil)
