// Package input parses the command prompt of the timeline.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// Commands are the prompt commands of the day view.
var Commands = []PromptCommand{
	{Name: "/draft", Usage: "/draft <text>", Description: "Draft events with the LLM"},
	{Name: "/goto", Usage: "/goto <date>", Description: "Go to a day (YYYY-MM-DD, tomorrow, friday...)"},
	{Name: "/today", Usage: "/today", Description: "Go to today"},
	{Name: "/copy", Usage: "/copy", Description: "Copy the agenda to the clipboard"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(trimmed, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	var matches []PromptCommand
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// Parse splits a prompt line into a command name and its argument.
// Text without a leading slash is a draft request.
func Parse(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	if !strings.HasPrefix(line, "/") {
		return "/draft", line
	}
	name, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}
