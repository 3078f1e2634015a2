/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize error events sent over the websocket and HTTP error responses.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please slow down.", Status: http.StatusTooManyRequests},
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters."},

	// 2xxx: Room and Content Business Logic Errors
	ErrGroupNameRequired:     {Code: ErrGroupNameRequired, Message: "Group name is required."},
	ErrGroupNameReserved:     {Code: ErrGroupNameReserved, Message: "Group name contains a reserved character."},
	ErrGroupNameConflict:     {Code: ErrGroupNameConflict, Message: "A group with that name already exists."},
	ErrGroupNotFound:         {Code: ErrGroupNotFound, Message: "Group not found."},
	ErrNotGroupMember:        {Code: ErrNotGroupMember, Message: "You have not joined that group."},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrMessageNotFound:       {Code: ErrMessageNotFound, Message: "Message not found."},
	ErrNotMessageOwner:       {Code: ErrNotMessageOwner, Message: "You can only delete your own messages."},

	// 3xxx: Identity and Session Errors
	ErrUsernameRequired:  {Code: ErrUsernameRequired, Message: "Username is required."},
	ErrUsernameTaken:     {Code: ErrUsernameTaken, Message: "Username already exists"},
	ErrTargetNotFound:    {Code: ErrTargetNotFound, Message: "That user is not online."},
	ErrHandshakeRequired: {Code: ErrHandshakeRequired, Message: "Identify yourself before chatting."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
