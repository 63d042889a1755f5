package combine

import "strings"

// MessageSeparator joins combined messages.
const MessageSeparator = "; "

// Errors is an ordered sequence of errors. It combines by concatenation.
type Errors []error

// Of collects the non-nil errors into an Errors value.
func Of(errs ...error) Errors {
	out := make(Errors, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Combine returns a new sequence holding e followed by other.
// Neither input is modified.
func (e Errors) Combine(other Errors) Errors {
	out := make(Errors, 0, len(e)+len(other))
	out = append(out, e...)
	return append(out, other...)
}

// Len returns the number of errors.
func (e Errors) Len() int {
	return len(e)
}

func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	}
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteString(MessageSeparator)
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the members to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	return e
}

// Message is a failure described by text alone.
type Message string

// Combine joins the two messages with MessageSeparator.
func (m Message) Combine(other Message) Message {
	return m + MessageSeparator + other
}

func (m Message) Error() string {
	return string(m)
}
