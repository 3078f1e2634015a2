/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in error events sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrRateLimitExceeded indicates that the request or event rate has exceeded the set limit.
	ErrRateLimitExceeded = 1001

	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1002
)

// 2xxx: Room and Content Business Logic Errors
const (
	// ErrGroupNameRequired indicates that a group operation was attempted with an empty name.
	ErrGroupNameRequired = 2101

	// ErrGroupNameReserved indicates that the requested group name contains the
	// separator character reserved for private-room keys.
	ErrGroupNameReserved = 2102

	// ErrGroupNameConflict indicates that a group with the requested name already exists.
	ErrGroupNameConflict = 2103

	// ErrGroupNotFound indicates that the targeted group does not exist.
	// Never-existed and already-deleted groups are deliberately indistinguishable.
	ErrGroupNotFound = 2104

	// ErrNotGroupMember indicates that the sender has not joined the targeted group.
	ErrNotGroupMember = 2105

	// ErrMessageContentTooLong indicates that the message content exceeded the maximum length.
	ErrMessageContentTooLong = 2201

	// ErrMessageNotFound indicates that a retraction targeted an unknown or
	// already-retracted message. The two cases produce the same error.
	ErrMessageNotFound = 2301

	// ErrNotMessageOwner indicates that a retraction was requested by someone
	// other than the message's owner.
	ErrNotMessageOwner = 2302
)

// 3xxx: Identity and Session Errors
const (
	// ErrUsernameRequired indicates a handshake with an empty username.
	ErrUsernameRequired = 3001

	// ErrUsernameTaken indicates that the requested display name is already held
	// by a live connection.
	ErrUsernameTaken = 3002

	// ErrTargetNotFound indicates that a private message targeted a name with no
	// live connection.
	ErrTargetNotFound = 3003

	// ErrHandshakeRequired indicates that a client sent a chat event before
	// completing the identity handshake.
	ErrHandshakeRequired = 3004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
