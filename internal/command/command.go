package command

import "context"

// Command is implemented by every read and write operation the application exposes.
// Req is the request type and Res is the result type.
type Command[Req, Res any] interface {
	Execute(ctx context.Context, req Req) (Res, error)
}

// Empty is used as the request or result type of commands that have none.
type Empty struct{}
