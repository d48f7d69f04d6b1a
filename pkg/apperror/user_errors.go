package apperror

var (
	ErrUserNotFound   = NotFound("user not found")
	ErrTargetNotFound = NotFound("target user not found")
	ErrSelfLike       = InvalidInput("cannot like yourself")
	ErrSelfDislike    = InvalidInput("cannot dislike yourself")
	ErrMissingUserID  = Unauthorized("user id is required")
	ErrInvalidSession = Unauthorized("invalid session")
	ErrInvalidPayload = InvalidInput("invalid request payload")
	ErrInvalidTarget  = InvalidInput("invalid target user id")
)
