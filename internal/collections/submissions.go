package collections

import (
	"context"
	"net/url"
	"strings"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/store"
)

// Submissions manages community-proposed catalog entries. Every new entry
// starts pending; moderation moves it to approved or rejected, and the
// reviewed flag always tracks that transition.
type Submissions struct {
	store store.Adapter
}

func NewSubmissions(adapter store.Adapter) *Submissions {
	return &Submissions{store: adapter}
}

// SubmissionInput is the user-supplied part of a submission.
type SubmissionInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

func (in SubmissionInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name is required")
	}
	raw := strings.TrimSpace(in.URL)
	if raw == "" {
		return invalidf("url is required")
	}
	if u, err := url.Parse(raw); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalidf("url must be absolute http(s)")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidf("description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return invalidf("category is required")
	}
	return nil
}

// Create validates and persists a pending submission.
func (s *Submissions) Create(ctx context.Context, in SubmissionInput) (domain.Submission, error) {
	if err := in.validate(); err != nil {
		return domain.Submission{}, err
	}

	sub := domain.Submission{
		Name:        strings.TrimSpace(in.Name),
		URL:         strings.TrimSpace(in.URL),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Image:       strings.TrimSpace(in.Image),
		Status:      domain.StatusPending,
		Reviewed:    false,
	}

	rec, err := toRecord(sub)
	if err != nil {
		return domain.Submission{}, err
	}
	res, err := s.store.Save(ctx, domain.CollectionSubmissions, rec)
	if err != nil {
		return domain.Submission{}, err
	}

	fromRecord(rec, &sub)
	sub.ID = res.ID
	return sub, nil
}

// SetStatus moves a submission through moderation. The reviewed flag is
// derived from the status here, never written independently.
func (s *Submissions) SetStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		return invalidf("unknown status %q", status)
	}
	return s.store.Update(ctx, domain.CollectionSubmissions, id, store.Record{
		"status":   status,
		"reviewed": status != domain.StatusPending,
	})
}

// List returns submissions newest first, optionally restricted to one
// status. Read failures degrade to an empty list.
func (s *Submissions) List(ctx context.Context, status string) []domain.Submission {
	var filters store.Filters
	if status != "" {
		filters = store.Filters{"status": status}
	}
	recs, err := s.store.Get(ctx, domain.CollectionSubmissions, filters)
	if err != nil {
		return []domain.Submission{}
	}

	out := make([]domain.Submission, 0, len(recs))
	for _, rec := range recs {
		var sub domain.Submission
		fromRecord(rec, &sub)
		out = append(out, sub)
	}
	return out
}

// Delete removes a submission permanently.
func (s *Submissions) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, domain.CollectionSubmissions, id)
}
