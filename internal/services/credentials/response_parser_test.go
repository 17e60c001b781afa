package credentials

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func newJSONResponse(body string) *http.Response {
	return &http.Response{Body: io.NopCloser(strings.NewReader(body))}
}

func TestOpenAIResponseParser_ParseTokensUsed(t *testing.T) {
	resp := newJSONResponse(`{"usage":{"total_tokens":42,"prompt_tokens":10,"completion_tokens":32}}`)

	p := &OpenAIResponseParser{}
	tokens, err := p.ParseTokensUsed(resp)
	if err != nil {
		t.Fatalf("ParseTokensUsed: %v", err)
	}
	if tokens != 42 {
		t.Errorf("tokens = %d, want 42", tokens)
	}

	// body must be restored so a later reader can still consume it
	remaining, _ := io.ReadAll(resp.Body)
	if len(remaining) == 0 {
		t.Error("response body was not restored after parsing")
	}
}

func TestClaudeResponseParser_ParseTokensUsed(t *testing.T) {
	resp := newJSONResponse(`{"usage":{"input_tokens":15,"output_tokens":25}}`)

	p := &ClaudeResponseParser{}
	tokens, err := p.ParseTokensUsed(resp)
	if err != nil {
		t.Fatalf("ParseTokensUsed: %v", err)
	}
	if tokens != 40 {
		t.Errorf("tokens = %d, want 40", tokens)
	}
}

func TestGenericResponseParser_ParseTokensUsed(t *testing.T) {
	resp := newJSONResponse(`{"usage":{"total_tokens":7}}`)

	p := &GenericResponseParser{JSONPath: "usage.total_tokens"}
	tokens, err := p.ParseTokensUsed(resp)
	if err != nil {
		t.Fatalf("ParseTokensUsed: %v", err)
	}
	if tokens != 7 {
		t.Errorf("tokens = %d, want 7", tokens)
	}
}

func TestGenericResponseParser_MissingPath(t *testing.T) {
	resp := newJSONResponse(`{"other":"data"}`)

	p := &GenericResponseParser{JSONPath: "usage.total_tokens"}
	tokens, err := p.ParseTokensUsed(resp)
	if err != nil {
		t.Fatalf("ParseTokensUsed: %v", err)
	}
	if tokens != 0 {
		t.Errorf("tokens = %d, want 0 for missing path", tokens)
	}
}

func TestGetParserForService(t *testing.T) {
	if _, ok := GetParserForService("openai").(*OpenAIResponseParser); !ok {
		t.Error("expected OpenAIResponseParser for openai")
	}
	if _, ok := GetParserForService("claude").(*ClaudeResponseParser); !ok {
		t.Error("expected ClaudeResponseParser for claude")
	}
	if _, ok := GetParserForService("github").(*GenericResponseParser); !ok {
		t.Error("expected GenericResponseParser fallback for unrecognized service")
	}
}

func TestResponseParser_NilBody(t *testing.T) {
	resp := &http.Response{}
	p := &OpenAIResponseParser{}
	tokens, err := p.ParseTokensUsed(resp)
	if err != nil {
		t.Fatalf("ParseTokensUsed with nil body: %v", err)
	}
	if tokens != 0 {
		t.Errorf("tokens = %d, want 0 for nil body", tokens)
	}
}
