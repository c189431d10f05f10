package model

// ContactRequest is a message left through the portfolio contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResult reports what the mail relay accepted.
type ContactResult struct {
	MessageID string   `json:"messageId"`
	Accepted  []string `json:"accepted"`
}
