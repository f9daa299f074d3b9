// Package query tokenizes the advanced post search language.
//
// A query is a space-separated list of chunks. A chunk is either a free word
// (matched against tag and artist names) or a field comparison of the form
// field:<op>value. A leading '-' on either form excludes matching posts.
//
//	catgirl -artist_x likes:>=50 uploader:alice -createdAt:<2023-01-01
package query

import (
	"errors"
	"strings"
)

const (
	separator = ":"
	negation  = "-"
)

// Tokenize splits raw on single spaces and parses every chunk in order.
// It stops at the first invalid chunk and returns a *ParseError.
func Tokenize(raw string) ([]Token, error) {
	chunks := strings.Split(raw, " ")
	tokens := make([]Token, 0, len(chunks))

	for _, chunk := range chunks {
		tok, err := parseChunk(chunk)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

func parseChunk(chunk string) (Token, error) {
	switch strings.Count(chunk, separator) {
	case 0:
		word, negated := strings.CutPrefix(chunk, negation)
		return NewFreeToken(word, negated), nil
	case 1:
		return parseFieldChunk(chunk)
	default:
		return Token{}, newParseError(ErrMalformedToken, chunk, "more than one ':' separator")
	}
}

func parseFieldChunk(chunk string) (Token, error) {
	prefix, rawValue, _ := strings.Cut(chunk, separator)
	name, negated := strings.CutPrefix(prefix, negation)

	f, ok := ParseField(name)
	if !ok {
		return Token{}, newParseError(ErrUnknownField, chunk, "unknown field "+strings.TrimSpace(name))
	}

	op, text, err := splitOperator(f, rawValue)
	if err != nil {
		return Token{}, newParseError(ErrAmbiguousOrMissingOperator, chunk, err.Error())
	}

	v, err := f.Coerce(text)
	if err != nil {
		return Token{}, newParseError(ErrInvalidValue, chunk, err.Error())
	}

	return NewFieldToken(f, op, v, negated), nil
}

// splitOperator finds the comparison operator of rawValue and strips every
// occurrence of its literal. uploader always compares with '='.
func splitOperator(f Field, rawValue string) (Operator, string, error) {
	if f == FieldUploader {
		return OpEqual, strings.ReplaceAll(rawValue, string(OpEqual), ""), nil
	}

	op, ok := prefixOperator(rawValue)
	if !ok {
		return "", "", errMissingOperator
	}

	text := strings.ReplaceAll(rawValue, string(op), "")
	if _, again := prefixOperator(text); again {
		return "", "", errSecondOperator
	}

	return op, text, nil
}

var (
	errMissingOperator = errors.New("value must start with one of = != < <= > >=")
	errSecondOperator  = errors.New("value contains more than one operator")
)
