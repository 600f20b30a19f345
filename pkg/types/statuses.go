package types

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusPending, SubscriptionStatusActive, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	default:
		return false
	}
}

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusApproved  ReferralStatus = "approved"
	ReferralStatusPaid      ReferralStatus = "paid"
	ReferralStatusCancelled ReferralStatus = "cancelled"
)

func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusApproved, ReferralStatusPaid, ReferralStatusCancelled:
		return true
	default:
		return false
	}
}

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted, PayoutStatusFailed:
		return true
	default:
		return false
	}
}

// Final reports whether the payout has reached a terminal state. Moving into a
// terminal state stamps processed_at on the payout row.
func (s PayoutStatus) Final() bool {
	return s == PayoutStatusCompleted || s == PayoutStatusFailed
}

type ContentType string

const (
	ContentTypeArticle  ContentType = "article"
	ContentTypeVideo    ContentType = "video"
	ContentTypeCourse   ContentType = "course"
	ContentTypeDownload ContentType = "download"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeArticle, ContentTypeVideo, ContentTypeCourse, ContentTypeDownload:
		return true
	default:
		return false
	}
}
