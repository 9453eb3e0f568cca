// Package tools declares the joke tools exposed by the bridge and
// dispatches tool calls to their handlers.
package tools

// Subtypes is the closed set of joke subtypes accepted by the API, in
// declaration order. "All" is a sentinel meaning no filter. Both the
// advertised input schema and runtime validation derive from this slice
// so the two cannot drift apart.
var Subtypes = []string{"All", "One-liner", "Observational", "Stereotype", "Wordplay", "Long"}

// Tool describes an invocable tool and its input schema.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// CallParams carries a tool invocation: the tool name and its untrusted
// arguments.
type CallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// Content is one block of a tool result. Only text blocks are produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the uniform response for every invocation. Failures are
// carried as error-marked text, never as a fault across the boundary.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

const (
	// ToolGetJoke fetches one joke from the remote API.
	ToolGetJoke = "get_italian_joke"
	// ToolListSubtypes lists the accepted subtypes. Purely local.
	ToolListSubtypes = "list_joke_subtypes"
)

// List returns the tool descriptors in a fixed order.
func List() []Tool {
	return []Tool{
		{
			Name:        ToolGetJoke,
			Description: "Get a random Italian joke from the Italian Jokes API",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"subtype": map[string]interface{}{
						"type":        "string",
						"description": "Optional joke subtype. \"All\" or absent means any category.",
						"enum":        subtypeEnum(),
					},
				},
			},
		},
		{
			Name:        ToolListSubtypes,
			Description: "List all available Italian joke subtypes",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// Lookup returns the descriptor for name, or false if the tool is not
// registered.
func Lookup(name string) (Tool, bool) {
	for _, t := range List() {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// ValidSubtype reports whether s is a member of Subtypes.
func ValidSubtype(s string) bool {
	for _, v := range Subtypes {
		if s == v {
			return true
		}
	}
	return false
}

func subtypeEnum() []interface{} {
	enum := make([]interface{}, len(Subtypes))
	for i, s := range Subtypes {
		enum[i] = s
	}
	return enum
}
