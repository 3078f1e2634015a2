/*
Package user contains core data structures related to user identity.

It defines the basic representation of a connected chat participant (the Profile
struct), used for passing identity information both internally and to clients.
*/
package user

// Profile represents the identity of one connected chat participant.
// Display names are unique (case-sensitive) among live connections.
type Profile struct {

	// Name is the display name shown in chat and rosters.
	Name string `json:"name"`

	// Avatar is a reference (URL or asset key) to the user's avatar image.
	Avatar string `json:"avatar,omitempty"`
}
