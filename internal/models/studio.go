package models

import "time"

type Studio struct {
	ID          int     `json:"id"`
	OwnerID     int     `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// заполняются обратным геокодированием; пустые, если геокодер недоступен
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`

	PricePerHour int64     `json:"price_per_hour"`
	CreatedAt    time.Time `json:"created_at"`
}
