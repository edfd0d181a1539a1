package dto

// SendDocumentEmailRequest asks for a rendered document to be emailed.
type SendDocumentEmailRequest struct {
	RecipientEmail string `json:"recipientEmail" binding:"required,email"`
	RecipientName  string `json:"recipientName" binding:"max=200"`
	Subject        string `json:"subject" binding:"required,max=250"`
	Message        string `json:"message" binding:"max=10000"`
}

// DispatchResult reports the outcome of an email dispatch. Delivery failures are
// reported here rather than as errors so callers can decide whether to retry.
type DispatchResult struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentID"`
	Recipient  string `json:"recipient"`
	FileName   string `json:"fileName,omitempty"`
	Error      string `json:"error,omitempty"`
}
