package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptForChoice prompts the user to select one of options.
// Returns the default value if no input is provided and re-asks on anything not listed.
func PromptForChoice(out io.Writer, reader *bufio.Reader, promptText string, options []string, defaultValue string) string {
	for {
		fmt.Fprintf(out, "%s (%s) [%s]: ", promptText, strings.Join(options, "/"), defaultValue)
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line == "" {
			return defaultValue
		}
		for _, option := range options {
			if strings.EqualFold(option, line) {
				return option
			}
		}
		if err != nil {
			return defaultValue
		}
		fmt.Fprintf(out, "Please choose one of: %s\n", strings.Join(options, ", "))
	}
}

// PromptForYesNo prompts the user for a yes/no question
// Returns true for yes, false for no, or the default value if no input
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) bool {
	label := buildYesNoLabel(defaultValue)
	fmt.Fprintf(out, "%s [%s]: ", promptText, label)

	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))

	if line == "" {
		return defaultValue
	}

	return isAffirmativeResponse(line)
}

// PromptForString prompts the user for a string input with an optional default value
func PromptForString(out io.Writer, reader *bufio.Reader, promptText string, defaultValue string) string {
	fmt.Fprintf(out, "%s ", promptText)

	if defaultValue != "" {
		fmt.Fprintf(out, "(default: %s)", defaultValue)
	}

	fmt.Fprint(out, ": ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)

	if line == "" {
		return defaultValue
	}
	return line
}

// PromptForSecret reads a secret. The current value is never echoed, only whether one exists.
// An empty answer keeps the current value.
func PromptForSecret(out io.Writer, reader *bufio.Reader, promptText string, hasCurrent bool) string {
	if hasCurrent {
		fmt.Fprintf(out, "%s (leave empty to keep the stored key): ", promptText)
	} else {
		fmt.Fprintf(out, "%s: ", promptText)
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// buildYesNoLabel constructs the appropriate y/N or Y/n label based on the default
func buildYesNoLabel(defaultIsYes bool) string {
	if defaultIsYes {
		return "Y/n"
	}
	return "y/N"
}

// isAffirmativeResponse checks if a response is affirmative (yes)
func isAffirmativeResponse(response string) bool {
	return response == "y" || response == "yes"
}
