package models

// PixPayer identifies the paying customer as the PIX provider expects it.
type PixPayer struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

// PixPaymentRequest - payload for creating a PIX charge
type PixPaymentRequest struct {
	Amount            string   `json:"amount" binding:"required"`
	Description       string   `json:"description"`
	Payer             PixPayer `json:"payer"`
	ExternalReference string   `json:"external_reference"`
}

// SaveSelectionRequest - payload for replacing the current selection
type SaveSelectionRequest struct {
	MovieID    *int64   `json:"movieId"`
	Seats      []string `json:"seats"`
	TotalPrice float64  `json:"totalPrice"`
}

// CreateTicketRequest - partial ticket sent to the ticketing service
type CreateTicketRequest struct {
	Client               *string  `json:"client,omitempty"`
	Reference            string   `json:"reference,omitempty"`
	TheaterMovieTitle    string   `json:"theater_movie_title,omitempty"`
	TheaterMovieDatetime string   `json:"theater_movie_datetime,omitempty"`
	TheaterSeats         []string `json:"theater_seats,omitempty"`
	Payment              any      `json:"payment,omitempty"`
	Status               string   `json:"status,omitempty"`
}
