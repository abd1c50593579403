package models

// CreateBookingInput carries the fields a caller supplies when creating a
// booking. Scheduling fields are validated against ServiceType before any
// store access.
type CreateBookingInput struct {
	ServiceID  string `json:"serviceId"`
	UserID     string `json:"userId"`
	ProviderID string `json:"providerId"`

	ServiceName     string   `json:"serviceName"`
	ServiceLocation string   `json:"serviceLocation"`
	ServiceImages   []string `json:"serviceImages"`

	ServiceType  ServiceType `json:"serviceType"`
	CheckInDate  string      `json:"checkInDate"`
	CheckOutDate string      `json:"checkOutDate"`
	TimeSlot     *TimeSlot   `json:"timeSlot"`

	Guests      int                `json:"guests"`
	TotalAmount float64            `json:"totalAmount"`
	Policy      CancellationPolicy `json:"cancellationPolicy"`
}
