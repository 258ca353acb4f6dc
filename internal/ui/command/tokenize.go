package command

import (
	"strings"
	"unicode"
)

// Tokenize splits input on whitespace outside double quotes. A quote toggles
// quoting (no nesting); a backslash before '"' or '\' yields that character
// literally whether or not it is quoted.
func Tokenize(input string) ([]string, error) {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
			i++
			current.WriteRune(runes[i])
		case r == '"':
			inQuotes = !inQuotes
		case unicode.IsSpace(r) && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, &ParseError{Kind: ErrUnclosedQuote}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// Split validates and tokenises a command line.
func Split(input string) (Parsed, error) {
	if strings.TrimSpace(input) == "" {
		return Parsed{}, &ParseError{Kind: ErrEmpty}
	}
	tokens, err := Tokenize(input)
	if err != nil {
		return Parsed{}, err
	}
	if len(tokens) == 0 {
		return Parsed{}, &ParseError{Kind: ErrNoCommand}
	}
	return Parsed{Name: tokens[0], Args: tokens[1:]}, nil
}
