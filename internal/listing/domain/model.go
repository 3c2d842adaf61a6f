package domain

import "time"

// MaxPhotos is the number of fixed product picture slots a listing document
// carries (productpic1..productpic12).
const MaxPhotos = 12

// PromotionDuration is the length of a paid promotion window.
const PromotionDuration = 30 * 24 * time.Hour

// Listing is a user-submitted item for sale. OwnerEmail is set at creation
// and never changes afterwards.
type Listing struct {
	ID           string
	OwnerEmail   string
	OwnerName    string
	OwnerPicture string
	Title        string
	Description  string
	Price        string // decimal carried as a string, as submitted
	Category     string
	Subcategory  string
	Address      []string
	Photos       []string // capped at MaxPhotos

	// At most one of Vehicle / Extras is set, keyed by the category the
	// seller picked in the sell form.
	Vehicle *VehicleDetails
	Extras  *CategoryExtras

	IsPromoted         bool
	PromotionStart     *time.Time
	PromotionEnd       *time.Time
	PromotionPaymentID string
	PromotionOrderID   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PromotionActive reports whether the listing's promotion window covers t.
// A listing can carry IsPromoted=true with an elapsed window until the next
// feed sweep rewrites it.
func (l *Listing) PromotionActive(t time.Time) bool {
	return l.IsPromoted && l.PromotionEnd != nil && !l.PromotionEnd.Before(t)
}

// VehicleDetails holds the structured fields of car/bike listings.
type VehicleDetails struct {
	Brand    string
	Model    string
	Year     string
	FuelType string
}

// CategoryExtras holds the structured fields of non-vehicle categories.
type CategoryExtras struct {
	Brand     string
	Model     string
	Year      string
	Condition string
}

// WishlistEntry marks a listing as saved by a user. The (UserEmail, ListingID)
// pair is unique.
type WishlistEntry struct {
	ID        string
	UserEmail string
	ListingID string
	CreatedAt time.Time
}

// PaymentConfirmation is the checkout provider's callback payload for a
// promotion purchase. Signature is the provider's HMAC over OrderID and
// PaymentID; an empty signature can only pass on the deprecated unverified
// path.
type PaymentConfirmation struct {
	PaymentID string
	OrderID   string
	Signature string
}
