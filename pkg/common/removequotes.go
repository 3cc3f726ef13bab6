package common

// RemoveSingleQuotesIfAny turns "'/tmp/my cat.png'" into "/tmp/my cat.png" (shells and users quote paths with spaces).
func RemoveSingleQuotesIfAny(str string) string {
	if len(str) >= 2 && str[0] == '\'' && str[len(str)-1] == '\'' {
		str = str[1 : len(str)-1]
	}
	return str
}

// RemoveDoubleQuotesIfAny is the same as RemoveSingleQuotesIfAny for double quotes.
func RemoveDoubleQuotesIfAny(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	return str
}
