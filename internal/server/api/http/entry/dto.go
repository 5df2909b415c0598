package entry

// timeFormat is the wire format for timestamps, always UTC.
const timeFormat = "2006-01-02 15:04:05"

type Item struct {
	ID               int    `json:"id"`
	EncryptedTitle   string `json:"encrypted_title"`
	EncryptedContent string `json:"encrypted_content"`
	DateCreated      string `json:"date_created" example:"2025-03-01 12:00:00"`
	DateModified     string `json:"date_modified" example:"2025-03-01 12:00:00"`
}

type listOutput struct {
	Body []Item
}

// Presence of the ciphertext fields is checked by the service, not the
// schema, so an empty field and a missing one both map to a 400.
type request struct {
	EncryptedTitle   string `json:"encrypted_title,omitempty" doc:"Client-encrypted title"`
	EncryptedContent string `json:"encrypted_content,omitempty" doc:"Client-encrypted content"`
}

type createInput struct {
	Body request
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"Entry ID"`
	Body request
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"Entry ID"`
}

type mutateOutput struct {
	Body mutateResponse
}

type mutateResponse struct {
	Message      string `json:"message"`
	ID           int    `json:"id"`
	DateModified string `json:"date_modified" example:"2025-03-01 12:00:00"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Message string `json:"message"`
}
