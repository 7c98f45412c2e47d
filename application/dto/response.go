package dto

// ResponseKind selects the styling of a reply
type ResponseKind int

const (
	ResponseSuccess ResponseKind = iota
	ResponseInfo
	ResponseError
)

// Outcome classifies how a command ended
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomePermissionDenied Outcome = "permission_denied"
	OutcomeSetupRequired    Outcome = "setup_required"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeError            Outcome = "error"
)

// Field is a name/value pair shown in a reply
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Response is a platform-neutral reply payload
type Response struct {
	Kind        ResponseKind
	Outcome     Outcome
	Title       string
	Description string
	Fields      []Field
	Color       string // #RRGGBB override; empty uses the kind's colour
	Footer      string
	Timestamp   bool
	ImageURL    string
	Ephemeral   bool
	FollowUps   []Response // Sent after the main reply
}

// AddField appends a field and returns the response for chaining
func (r *Response) AddField(name, value string, inline bool) *Response {
	r.Fields = append(r.Fields, Field{Name: name, Value: value, Inline: inline})
	return r
}

// Success creates a success reply
func Success(title, description string) *Response {
	return &Response{Kind: ResponseSuccess, Outcome: OutcomeSuccess, Title: title, Description: description}
}

// Info creates an informational reply
func Info(title, description string) *Response {
	return &Response{Kind: ResponseInfo, Outcome: OutcomeSuccess, Title: title, Description: description}
}

// Failure creates an ephemeral error reply
func Failure(outcome Outcome, title, description string) *Response {
	return &Response{Kind: ResponseError, Outcome: outcome, Title: title, Description: description, Ephemeral: true}
}

// VerifyButtonID is the custom ID of the button attached to verification prompts
const VerifyButtonID = "verify_button"

// Button is an interactive button attached to an outbound message
type Button struct {
	CustomID string
	Label    string
	Emoji    string
}

// OutboundMessage is a message the bot posts into a channel or DM
type OutboundMessage struct {
	Embed  Response
	Button *Button
}
