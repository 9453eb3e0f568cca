package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/amxkifir/italian-jokes-MCP/internal/jokes"
)

// Dispatcher routes tool calls to their handlers. Every call yields
// exactly one Result; no handler fault escapes Invoke.
type Dispatcher struct {
	client *jokes.Client
}

// NewDispatcher returns a dispatcher backed by the given API client.
func NewDispatcher(client *jokes.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Client exposes the underlying API client for transport-level probes.
func (d *Dispatcher) Client() *jokes.Client { return d.client }

// Invoke validates and executes one tool call. Unknown tools, bad
// arguments, and handler failures all come back as an error-marked
// Result with the text prefixed "Error: ".
func (d *Dispatcher) Invoke(ctx context.Context, params CallParams) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult(fmt.Sprintf("internal fault: %v", r))
		}
	}()

	tool, ok := Lookup(params.Name)
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	if err := validateArguments(tool, params.Arguments); err != nil {
		return errorResult(err.Error())
	}

	switch tool.Name {
	case ToolGetJoke:
		subtype, _ := params.Arguments["subtype"].(string)
		text, err := d.getItalianJoke(ctx, subtype)
		if err != nil {
			return errorResult(err.Error())
		}
		return textResult(text)
	case ToolListSubtypes:
		return textResult(listJokeSubtypes())
	}
	return errorResult(fmt.Sprintf("Unknown tool: %s", params.Name))
}

// validateArguments checks args against the tool's advertised schema
// before any I/O happens.
func validateArguments(tool Tool, args map[string]interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(tool.InputSchema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	if result.Valid() {
		return nil
	}
	if v, ok := args["subtype"]; ok {
		return fmt.Errorf("Invalid subtype: %v. Available options: %s", v, strings.Join(Subtypes, ", "))
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func (d *Dispatcher) getItalianJoke(ctx context.Context, subtype string) (string, error) {
	joke, err := d.client.Get(ctx, subtype)
	if err != nil {
		return "", mapFetchError(err)
	}
	return FormatJoke(joke), nil
}

// mapFetchError converts client failures into the messages surfaced to
// callers. The wording is fixed; downstream consumers match on it.
func mapFetchError(err error) error {
	var se *jokes.StatusError
	switch {
	case errors.As(err, &se) && se.Code == http.StatusNotFound:
		return errors.New("No jokes found for the specified subtype")
	case jokes.IsTimeout(err):
		return errors.New("Request timeout - the Italian Jokes API is not responding")
	case errors.As(err, &se):
		msg := se.Body
		if msg == "" {
			msg = http.StatusText(se.Code)
		}
		return fmt.Errorf("API Error: %d - %s", se.Code, msg)
	default:
		return fmt.Errorf("Failed to fetch Italian joke: %v", err)
	}
}

// FormatJoke renders a joke in the fixed layout consumed downstream:
// flag-prefixed title with the subtype, blank line, joke body,
// separator, then an id/type footer.
func FormatJoke(j *jokes.Joke) string {
	return fmt.Sprintf("🇮🇹 Italian Joke (%s)\n\n%s\n\n---\nJoke #%d | Type: %s",
		j.Subtype, j.Joke, j.ID, j.Type)
}

func listJokeSubtypes() string {
	var b strings.Builder
	b.WriteString("🇮🇹 Available Italian Joke Subtypes:\n\n")
	for i, s := range Subtypes {
		if s == jokes.SubtypeAll {
			fmt.Fprintf(&b, "%d. %s (random joke from any category)\n", i+1, s)
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\nUse the 'subtype' argument of get_italian_joke to pick a category.")
	return b.String()
}

// FetchMany fetches up to count jokes sequentially, skipping individual
// failures the way the batch HTTP endpoint always has. count is assumed
// to be validated by the caller.
func (d *Dispatcher) FetchMany(ctx context.Context, count int, subtype string) []jokes.Joke {
	out := make([]jokes.Joke, 0, count)
	for i := 0; i < count; i++ {
		j, err := d.client.Get(ctx, subtype)
		if err != nil {
			continue
		}
		out = append(out, *j)
	}
	return out
}

func textResult(text string) Result {
	return Result{Content: []Content{{Type: "text", Text: text}}}
}

func errorResult(msg string) Result {
	return Result{
		Content: []Content{{Type: "text", Text: "Error: " + msg}},
		IsError: true,
	}
}
