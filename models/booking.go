package models

import "time"

// ServiceType selects which scheduling representation is authoritative for a booking.
type ServiceType string

const (
	ServiceTypeDateBased ServiceType = "date_based"
	ServiceTypeTimeBased ServiceType = "time_based"
)

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
	return t == ServiceTypeDateBased || t == ServiceTypeTimeBased
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CancellationPolicy names the refund terms agreed at booking time.
type CancellationPolicy string

const (
	Policy24Hours  CancellationPolicy = "24_hours"
	Policy48Hours  CancellationPolicy = "48_hours"
	Policy72Hours  CancellationPolicy = "72_hours"
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyStrict   CancellationPolicy = "strict"
)

// Valid reports whether p is a known cancellation policy.
func (p CancellationPolicy) Valid() bool {
	switch p {
	case Policy24Hours, Policy48Hours, Policy72Hours, PolicyFlexible, PolicyStrict:
		return true
	}
	return false
}

// CancelActor identifies who triggered a cancellation.
type CancelActor string

const (
	CancelledByCustomer CancelActor = "customer"
	CancelledByProvider CancelActor = "provider"
	CancelledByAdmin    CancelActor = "admin"
)

// Valid reports whether a is a known cancel actor.
func (a CancelActor) Valid() bool {
	return a == CancelledByCustomer || a == CancelledByProvider || a == CancelledByAdmin
}

// RequestStatus is the state of a cancellation escalation request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// TimeSlot is a date plus start/end time pair for time-based services.
// Times are zero-padded "HH:mm" strings, which sort correctly lexicographically.
type TimeSlot struct {
	Date      string `bson:"date" json:"date"`           // "YYYY-MM-DD"
	StartTime string `bson:"startTime" json:"startTime"` // "HH:mm"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:mm"
}

// CancellationRequest is the super-admin escalation sub-record, distinct from
// a direct cancellation.
type CancellationRequest struct {
	Status      RequestStatus `bson:"status" json:"status"`
	RequestedAt time.Time     `bson:"requestedAt" json:"requestedAt"`
	RequestedBy CancelActor   `bson:"requestedBy" json:"requestedBy"`
	Reason      string        `bson:"reason" json:"reason"`
	ProcessedAt *time.Time    `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	ProcessedBy string        `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
	AdminNotes  string        `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
}

// Booking is the central reservation record shared between customer and provider.
// The service* fields are snapshots copied at creation time for historical
// display and are never updated afterwards, even if the source service changes.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	UserID     string `bson:"userId" json:"userId"`
	ProviderID string `bson:"providerId" json:"providerId"`

	ServiceName     string   `bson:"serviceName" json:"serviceName"`
	ServiceLocation string   `bson:"serviceLocation,omitempty" json:"serviceLocation,omitempty"`
	ServiceImages   []string `bson:"serviceImages,omitempty" json:"serviceImages,omitempty"`

	ServiceType  ServiceType `bson:"serviceType" json:"serviceType"`
	CheckInDate  string      `bson:"checkInDate,omitempty" json:"checkInDate,omitempty"`   // "YYYY-MM-DD", date_based only
	CheckOutDate string      `bson:"checkOutDate,omitempty" json:"checkOutDate,omitempty"` // "YYYY-MM-DD", date_based only
	TimeSlot     *TimeSlot   `bson:"timeSlot,omitempty" json:"timeSlot,omitempty"`         // time_based only

	Guests      int                `bson:"guests" json:"guests"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Status      BookingStatus      `bson:"status" json:"status"`
	Policy      CancellationPolicy `bson:"cancellationPolicy" json:"cancellationPolicy"`

	// Cancellation outcome, write-once when the booking is cancelled.
	CancelledAt        *time.Time  `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        CancelActor `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancellationReason string      `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	RefundAmount       *float64    `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	RefundPercentage   *int        `bson:"refundPercentage,omitempty" json:"refundPercentage,omitempty"`

	CancellationRequest *CancellationRequest `bson:"cancellationRequest,omitempty" json:"cancellationRequest,omitempty"`

	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

// Active reports whether the booking counts toward availability conflicts.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
