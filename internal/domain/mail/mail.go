package mail

import "context"

// Message is one outbound email. PlainBody is always set; HTMLBody is
// optional and rides along as the rich alternative when present.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
	To        []string
}

// Sender delivers a message synchronously. Implementations decouple the
// application from the concrete mail provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Renderer turns a named template plus its data into an HTML body.
// A render failure is a per-message error the caller must isolate.
type Renderer interface {
	Render(name string, data any) (string, error)
}
