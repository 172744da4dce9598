package errors

// Messages paired with the status codes the API emits.
const (
	MsgNotFound         = "Resource not found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgUnprocessable    = "Unprocessable Entity"
	MsgInternalError    = "Internal Server Error"
	MsgUpstreamError    = "Bad Gateway"
)
