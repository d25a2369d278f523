package cohere

import "encoding/json"

// Role identifies the message sender.
type Role string

// Message roles accepted by the Chat API.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message is a conversation turn.
//
// User, system, and assistant text messages carry Content. Assistant turns
// that requested tools carry ToolCalls and ToolPlan instead; the matching
// tool-result turns carry ToolCallID plus Content holding the serialized
// result.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	// ToolCalls holds the tool invocations an assistant turn requested.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolPlan is the model's stated plan for the requested tool calls.
	ToolPlan string `json:"tool_plan,omitempty"`

	// ToolCallID links a tool-result turn to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewUserMessage creates a user text message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates a system text message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewAssistantMessage creates an assistant text message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolResultMessage creates a tool-result turn answering the given call.
// The result should already be serialized (typically JSON).
func NewToolResultMessage(toolCallID, result string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, Content: result}
}

// Tool defines a function the model may invoke.
type Tool struct {
	Type     string       `json:"type"` // always "function"
	Function ToolFunction `json:"function"`
}

// ToolFunction describes a callable function: its name, what it does, and a
// JSON Schema for its arguments.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// NewTool creates a function tool definition.
func NewTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the function name and JSON-encoded arguments.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatRequest configures a chat completion call.
type ChatRequest struct {
	// Model is the model to use, e.g. "command-a-03-2025".
	Model string `json:"model"`

	// Messages is the conversation so far. Must be non-empty.
	Messages []Message `json:"messages"`

	// Tools lists functions the model may invoke.
	Tools []Tool `json:"tools,omitempty"`

	// Temperature controls sampling randomness. Parallel reasoning runs
	// hot (1.0) so samples actually differ. Nil uses the API default.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens limits the response length. 0 uses the API default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// P and K configure nucleus and top-k sampling. Zero values are omitted.
	P float64 `json:"p,omitempty"`
	K int     `json:"k,omitempty"`
}

// Temp is a convenience for ChatRequest.Temperature.
func Temp(t float64) *float64 { return &t }

// ChatResponse is the output of a chat completion call.
type ChatResponse struct {
	// ID is the generation ID assigned by the API.
	ID string `json:"id"`

	// FinishReason indicates why the model stopped.
	// Values: "COMPLETE", "MAX_TOKENS", "TOOL_CALL", "STOP_SEQUENCE", "ERROR".
	FinishReason string `json:"finish_reason"`

	// Message is the assistant turn produced by the model.
	Message AssistantMessage `json:"message"`

	// Usage tracks token consumption for this request.
	Usage Usage `json:"usage"`
}

// AssistantMessage is the assistant turn in a ChatResponse. Text arrives as
// a list of content blocks; tool requests arrive as ToolCalls.
type AssistantMessage struct {
	Role      Role           `json:"role"`
	Content   []ContentBlock `json:"content,omitempty"`
	ToolCalls []ToolCall     `json:"tool_calls,omitempty"`
	ToolPlan  string         `json:"tool_plan,omitempty"`
}

// ContentBlock is one piece of assistant output.
type ContentBlock struct {
	Type string `json:"type"` // "text" or "thinking"
	Text string `json:"text,omitempty"`
}

// Text concatenates the text blocks of the assistant message.
func (m AssistantMessage) Text() string {
	var out string
	for _, block := range m.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out
}

// Text returns the text content of the response.
func (r *ChatResponse) Text() string {
	return r.Message.Text()
}

// HasToolCalls reports whether the model requested tool invocations.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.Message.ToolCalls) > 0
}

// Usage tracks token consumption as reported by the API.
type Usage struct {
	BilledUnits TokenCount `json:"billed_units"`
	Tokens      TokenCount `json:"tokens"`
}

// TokenCount is an input/output token pair.
type TokenCount struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add combines usage from another Usage.
func (u *Usage) Add(other Usage) {
	u.BilledUnits.InputTokens += other.BilledUnits.InputTokens
	u.BilledUnits.OutputTokens += other.BilledUnits.OutputTokens
	u.Tokens.InputTokens += other.Tokens.InputTokens
	u.Tokens.OutputTokens += other.Tokens.OutputTokens
}
