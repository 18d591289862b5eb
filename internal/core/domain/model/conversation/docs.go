// Package conversation holds the order intake state machine.
//
// A Conversation is keyed by the sender's phone number and walks a buyer
// from school code to confirmation one message at a time. The aggregate
// only validates and accumulates selections; resolving codes and lists
// against the catalog is the application layer's job. Invalid input never
// mutates the machine, so the handler can re-prompt and retry.
package conversation
