package repl

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/packrat/grammar"
)

// commandPrefix introduces a REPL command; any other input is parsed.
const commandPrefix = ":"

// commands are the REPL commands, without prefix.
var commands = []string{"grammar", "grammars", "memo", "rules", "help", "clear", "quit"}

// commandArgs lists the candidates for the argument of a command.
func commandArgs(cmd string) []string {
	switch cmd {
	case "grammar":
		return grammar.Names()
	case "memo":
		return []string{"on", "off"}
	}

	return nil
}

// completion is a set of candidates for the word spanning [start, end) of
// the input.
type completion struct {
	matches    fuzzy.Matches
	start, end int
}

// complete returns the candidates for the word under completion. Only
// commands and their arguments are completed; parser input is left alone.
func complete(input string) completion {
	rest, ok := strings.CutPrefix(input, commandPrefix)
	if !ok {
		return completion{}
	}

	name, arg, hasArg := strings.Cut(rest, " ")
	if !hasArg {
		return completion{
			matches: match(name, commands),
			start:   len(commandPrefix),
			end:     len(input),
		}
	}

	arg = strings.TrimLeft(arg, " ")

	return completion{
		matches: match(arg, commandArgs(name)),
		start:   len(input) - len(arg),
		end:     len(input),
	}
}

// match ranks candidates against pattern. An empty pattern matches every
// candidate in its original order.
func match(pattern string, candidates []string) fuzzy.Matches {
	if len(candidates) == 0 {
		return nil
	}

	if pattern == "" {
		all := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			all[i] = fuzzy.Match{Str: c, Index: i}
		}

		return all
	}

	matches := fuzzy.Find(pattern, candidates)

	// An exact match is complete; nothing left to suggest.
	if len(matches) == 1 && matches[0].Str == pattern {
		return nil
	}

	return matches
}

// apply replaces the completed word in input with candidate.
func (c completion) apply(input, candidate string) string {
	return input[:c.start] + candidate + input[c.end:]
}
