package constants

const (
	MsgRouteNotFound       = "Route not found"
	MsgInternalServerError = "Internal server error"
	MsgTooManyRequests     = "Too many requests"
)

const (
	MsgUsersFetched    = "Users fetched successfully"
	MsgUserFetched     = "User fetched successfully"
	MsgUserCreated     = "User created successfully"
	MsgUserUpdated     = "User updated successfully"
	MsgUserDeleted     = "User deleted successfully"
	MsgUserNotFound    = "User not found"
	MsgInvalidUserBody = "Invalid request body"
	MsgUserFieldsReq   = "Name and email are required"
	MsgEmailTaken      = "Email already in use"
	MsgUserFetchFailed = "Failed to fetch users"
	MsgUserSaveFailed  = "Failed to save user"
)
