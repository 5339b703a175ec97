// pkg/flow/node.go
package flow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Node is one step of a pipeline: a function applied to named inputs that
// produces named outputs.
type Node struct {
	Name    string
	Func    string
	Inputs  []string
	Outputs []string
}

// String renders the node the way run logs show it.
func (n Node) String() string {
	return fmt.Sprintf("%s([%s]) -> [%s]", n.Func, strings.Join(n.Inputs, ","), strings.Join(n.Outputs, ","))
}

var nodeCall = regexp.MustCompile(`\bnode\s*\(`)

// ParseNodes extracts node(...) declarations from pipeline source code.
// Arguments may be positional (func, inputs, outputs) or keywords; inputs and
// outputs are a string literal, a list of string literals or None.
func ParseNodes(src string) ([]Node, error) {
	var nodes []Node
	for _, loc := range nodeCall.FindAllStringIndex(src, -1) {
		body, err := callBody(src, loc[1])
		if err != nil {
			return nil, err
		}
		n, err := parseNode(body)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// callBody returns the text between the opening parenthesis ending at start
// and its matching closing parenthesis.
func callBody(src string, start int) (string, error) {
	depth := 1
	var quote byte
	for i := start; i < len(src); i++ {
		ch := src[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
			if depth == 0 {
				return src[start:i], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unterminated node declaration", ErrInvalidPipeline)
}

// splitTop splits s at commas that are not nested in brackets or quotes.
func splitTop(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		last  int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
		case ch == ',' && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	parts = append(parts, s[last:])

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var keywordArg = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)$`)

var positionalOrder = []string{"func", "inputs", "outputs"}

func parseNode(body string) (Node, error) {
	args := make(map[string]string)
	for i, arg := range splitTop(body) {
		if m := keywordArg.FindStringSubmatch(arg); m != nil {
			args[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		if i >= len(positionalOrder) {
			return Node{}, fmt.Errorf("%w: unexpected argument %q", ErrInvalidPipeline, arg)
		}
		args[positionalOrder[i]] = arg
	}

	var (
		n   Node
		err error
	)
	n.Func = args["func"]
	if !isIdent(n.Func) {
		return Node{}, fmt.Errorf("%w: node function %q is not a name", ErrInvalidPipeline, n.Func)
	}
	if n.Inputs, err = parseNames(args["inputs"]); err != nil {
		return Node{}, err
	}
	if n.Outputs, err = parseNames(args["outputs"]); err != nil {
		return Node{}, err
	}
	n.Name = n.Func
	if raw, ok := args["name"]; ok {
		if n.Name, err = unquote(raw); err != nil {
			return Node{}, err
		}
	}
	return n, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

func isIdent(s string) bool { return identPattern.MatchString(s) }

// parseNames decodes None, a string literal or a list of string literals.
func parseNames(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == "None":
		return nil, nil
	case strings.HasPrefix(raw, "["):
		if !strings.HasSuffix(raw, "]") {
			return nil, fmt.Errorf("%w: malformed list %q", ErrInvalidPipeline, raw)
		}
		items := splitTop(raw[1 : len(raw)-1])
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, err := unquote(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := unquote(raw)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func unquote(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		raw = `"` + strings.ReplaceAll(raw[1:len(raw)-1], `"`, `\"`) + `"`
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return "", fmt.Errorf("%w: expected a string literal, got %s", ErrInvalidPipeline, raw)
	}
	return s, nil
}
