package model

// Notice is a user-facing message emitted by the portfolio pipeline.
// Fatal notices mean nothing could be shown and the user should retry;
// non-fatal notices accompany cached data served after a network failure.
type Notice struct {
	Message string
	Detail  string
	Fatal   bool
}
