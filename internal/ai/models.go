// README: Request/response shapes for support drafting.
package ai

type DraftRequest struct {
	OrderID    string
	Status     string
	VendorName string
	// Reason is the operator-supplied context, e.g. a cancellation note.
	Reason string
}

type DraftResult struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}
