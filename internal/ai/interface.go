// README: Contract for AI-assisted support drafting.
package ai

import "context"

// SupportDrafter drafts customer-facing copy from order facts.
// The interface allows swapping providers (Gemini, OpenAI, etc.).
type SupportDrafter interface {
	// DraftStatusNote writes a short customer-facing note explaining the
	// order's latest status change.
	DraftStatusNote(ctx context.Context, req DraftRequest) (*DraftResult, error)
}
