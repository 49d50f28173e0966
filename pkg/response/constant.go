package response

const (
	// MessageSuccess is the default success message.
	MessageSuccess = "Success"
	// DefaultErrorMessage is the masked message for unexpected errors.
	DefaultErrorMessage = "Something went wrong"

	// ValidationErrorCode is the envelope code for validation failures.
	ValidationErrorCode = 400
	// ValidationErrorMsg is the envelope message for validation failures.
	ValidationErrorMsg = "Validation error"
	// PermissionErrorCode is the envelope code for permission failures.
	PermissionErrorCode = 403
	// PermissionErrorMsg is the envelope message for permission failures.
	PermissionErrorMsg = "Permission error"
	// InternalServerErrorCode is the envelope code for unexpected errors.
	InternalServerErrorCode = 500

	// DefaultStackTraceDepth limits captured stack frames for error reports.
	DefaultStackTraceDepth = 32
	// DiscordMaxMessageLen is Discord's message content limit.
	DiscordMaxMessageLen = 2000
)
