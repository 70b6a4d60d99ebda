package model

// ExtractionResult is the validated output of one extractor call.
// MissingSlots is the extractor's own claim and is advisory only.
type ExtractionResult struct {
	Intent       Intent   `json:"intent"`
	Slots        Slots    `json:"slots"`
	MissingSlots []string `json:"missing_slots"`
	UserMessage  string   `json:"user_message"`
}

// ChatResponse is returned to the caller after one turn.
type ChatResponse struct {
	Intent       Intent     `json:"intent"`
	Slots        Slots      `json:"slots"`
	MissingSlots []SlotName `json:"missing_slots"`
	UserMessage  string     `json:"user_message"`
	ReadyToBook  bool       `json:"ready_to_book"`
}

// BookingResult is the outcome of a booking attempt.
type BookingResult struct {
	Success            bool   `json:"success"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	Error              string `json:"error,omitempty"`
}

// ChatRequest is the input of one turn.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}
