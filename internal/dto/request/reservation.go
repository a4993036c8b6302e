package request

type ReservationSeatRequest struct {
	Row      string `json:"row" validate:"required,min=1,max=3"`
	Number   int    `json:"number" validate:"required,min=1"`
	FareType string `json:"fare_type" validate:"required,oneof=full half"`
}

type CreateReservationRequest struct {
	SessionID     string                   `json:"session_id" validate:"required,uuid4"`
	Seats         []ReservationSeatRequest `json:"seats" validate:"required,min=1,dive"`
	PaymentMethod string                   `json:"payment_method" validate:"required,oneof=credit_card debit_card pix cash"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
