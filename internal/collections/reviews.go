package collections

import (
	"context"
	"strings"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/store"
)

// Reviews manages tool reviews. New reviews are visible immediately;
// moderation hides rather than deletes so the helpful counter survives a
// reinstatement.
type Reviews struct {
	store store.Adapter
}

func NewReviews(adapter store.Adapter) *Reviews {
	return &Reviews{store: adapter}
}

// ReviewInput is the user-supplied part of a review.
type ReviewInput struct {
	ToolID  string `json:"toolId"`
	Rating  int    `json:"rating"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

func (in ReviewInput) validate() error {
	if strings.TrimSpace(in.ToolID) == "" {
		return invalidf("toolId is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return invalidf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name is required")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return invalidf("comment is required")
	}
	return nil
}

// Create validates and persists a review.
func (r *Reviews) Create(ctx context.Context, in ReviewInput) (domain.Review, error) {
	if err := in.validate(); err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ToolID:  strings.TrimSpace(in.ToolID),
		Rating:  in.Rating,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Comment: strings.TrimSpace(in.Comment),
		Helpful: 0,
		Visible: true,
	}

	rec, err := toRecord(review)
	if err != nil {
		return domain.Review{}, err
	}
	res, err := r.store.Save(ctx, domain.CollectionReviews, rec)
	if err != nil {
		return domain.Review{}, err
	}

	fromRecord(rec, &review) // pick up the stamped timestamp
	review.ID = res.ID
	return review, nil
}

// ListVisible returns the visible reviews for a tool, newest first. Read
// failures degrade to an empty list.
func (r *Reviews) ListVisible(ctx context.Context, toolID string) []domain.Review {
	recs, err := r.store.Get(ctx, domain.CollectionReviews,
		store.Filters{"toolId": toolID, "visible": "true"})
	if err != nil {
		return []domain.Review{}
	}
	return decodeReviews(recs)
}

// ListAll returns every review for moderation, hidden ones included.
func (r *Reviews) ListAll(ctx context.Context) []domain.Review {
	recs, err := r.store.Get(ctx, domain.CollectionReviews, nil)
	if err != nil {
		return []domain.Review{}
	}
	return decodeReviews(recs)
}

// MarkHelpful increments the review's helpful counter by one.
func (r *Reviews) MarkHelpful(ctx context.Context, id string) error {
	recs, err := r.store.Get(ctx, domain.CollectionReviews, store.Filters{"id": id})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return store.ErrNotFound
	}

	var current domain.Review
	fromRecord(recs[0], &current)
	return r.store.Update(ctx, domain.CollectionReviews, id,
		store.Record{"helpful": current.Helpful + 1})
}

// SetVisible shows or hides a review without deleting it.
func (r *Reviews) SetVisible(ctx context.Context, id string, visible bool) error {
	return r.store.Update(ctx, domain.CollectionReviews, id,
		store.Record{"visible": visible})
}

// Delete removes a review permanently.
func (r *Reviews) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, domain.CollectionReviews, id)
}

func decodeReviews(recs []store.Record) []domain.Review {
	out := make([]domain.Review, 0, len(recs))
	for _, rec := range recs {
		var rv domain.Review
		fromRecord(rec, &rv)
		out = append(out, rv)
	}
	return out
}
