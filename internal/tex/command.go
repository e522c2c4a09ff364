// Package tex builds LaTeX markup: command invocations with bracketed
// parameters and chained brace arguments, sectioning commands, and escaping
// of reserved characters in free text.
package tex

import "strings"

// Delimiters for LaTeX parameter and argument lists.
const (
	ParameterStart = '['
	ParameterEnd   = ']'
	ArgumentStart  = '{'
	ArgumentEnd    = '}'
)

// KeyValue is a single LaTeX list token.
// A nil Value renders as a bare token ("key"), otherwise as "key=value".
type KeyValue struct {
	Key   string
	Value *string
}

// Bare returns a token without a value.
func Bare(key string) KeyValue {
	return KeyValue{Key: key}
}

// Pair returns a key=value token.
func Pair(key, value string) KeyValue {
	return KeyValue{Key: key, Value: &value}
}

// String renders the token.
func (kv KeyValue) String() string {
	if kv.Value == nil {
		return kv.Key
	}
	return kv.Key + "=" + *kv.Value
}

// CommandName returns the command name prefixed with a backslash.
func CommandName(name string) string {
	return `\` + name
}

// KeyValueList joins pairs with commas in input order and wraps the result
// in start and end. An empty list still emits both delimiters.
func KeyValueList(pairs []KeyValue, start, end byte) string {
	var b strings.Builder
	b.WriteByte(start)
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Key)
		if p.Value != nil {
			b.WriteByte('=')
			b.WriteString(*p.Value)
		}
	}
	b.WriteByte(end)
	return b.String()
}

// Parameter renders an optional parameter list: [a,b=c].
func Parameter(pairs []KeyValue) string {
	return KeyValueList(pairs, ParameterStart, ParameterEnd)
}

// Argument renders a mandatory argument: {a,b=c}.
func Argument(pairs []KeyValue) string {
	return KeyValueList(pairs, ArgumentStart, ArgumentEnd)
}

// ChainedArgument renders one argument group per inner list, as used by
// multi-argument commands like \newcommand{\x}{y}.
func ChainedArgument(lists [][]KeyValue) string {
	var b strings.Builder
	for _, l := range lists {
		b.WriteString(Argument(l))
	}
	return b.String()
}

// Command assembles a full invocation. A nil params or args slice means the
// part is absent; a non-nil empty slice emits empty delimiters.
func Command(name string, params []KeyValue, args [][]KeyValue) string {
	result := CommandName(name)
	if params != nil {
		result += Parameter(params)
	}
	if args != nil {
		result += ChainedArgument(args)
	}
	return result
}

// Simple renders \name{arg} with a single bare argument.
func Simple(name, arg string) string {
	return Command(name, nil, [][]KeyValue{{Bare(arg)}})
}
