package entry

import "time"

// MaxTitleLen bounds the encrypted title column.
const MaxTitleLen = 500

// Entry is an opaque ciphertext record. The server never decrypts the title
// or content; both arrive and leave exactly as the client produced them.
type Entry struct {
	ID               int
	UserID           int
	EncryptedTitle   string
	EncryptedContent string
	DateCreated      time.Time
	DateModified     time.Time
}
