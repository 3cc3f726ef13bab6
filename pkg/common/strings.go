package common

import "strings"

// IsStringInSlice returns true if string `str` is found in `slice`.
func IsStringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if str == s {
			return true
		}
	}
	return false
}

// SplitCommand splits "image /tmp/cat.png" into "image" and "/tmp/cat.png". The argument keeps inner spaces.
func SplitCommand(line string) (command, argument string) {
	line = strings.TrimSpace(line)
	command, argument, _ = strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(argument)
}

// Unquote removes one level of single or double quotes around `str`, if any.
func Unquote(str string) string {
	return RemoveSingleQuotesIfAny(RemoveDoubleQuotesIfAny(strings.TrimSpace(str)))
}
