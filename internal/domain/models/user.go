package models

// UserIdentity is the authenticated user's profile as returned by the
// backend. It is cached client-side for the session and dropped on logout;
// the server record is untouched.
type UserIdentity struct {
	UserID           string `json:"userId,omitempty"`
	FullName         string `json:"fullName"`
	EmailID          string `json:"emailId"`
	PhoneNumber      string `json:"phoneNumber"`
	OrganisationName string `json:"organisationName,omitempty"`
	ProfilePicURL    string `json:"profilePicUrl,omitempty"`
}
