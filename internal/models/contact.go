package models

// Contact is a help-seeker reachable by phone. Contacts are created by the
// router on first contact and may stay anonymous (blank names) until staff
// fill them in through the case UI.
type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt int64  `json:"createdAt"`
}

// Phone is a globally unique phone number. Numbers created by the router
// carry a fixed comment so staff can tell them apart from hand-entered ones.
type Phone struct {
	ID      int64  `json:"id"`
	Number  string `json:"number"`
	Comment string `json:"comment"`
}

// ContactPhone links a contact to one of its numbers.
type ContactPhone struct {
	ContactID int64 `json:"contactId"`
	PhoneID   int64 `json:"phoneId"`
}

// Helper is a staff profile with an assigned phone number. Helpers are
// provisioned outside the router; the router only reads them.
type Helper struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Active      bool   `json:"active"`
}
