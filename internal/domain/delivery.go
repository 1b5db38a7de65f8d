package domain

// Delivery option identifiers.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

// DeliveryOption is one entry of the fixed delivery table, carrying a flat
// fee in minor currency units.
type DeliveryOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Fee         int64  `json:"fee"`
}

// DeliveryOptions returns the fixed set of delivery options offered at
// checkout. In a production system this table would come from configuration;
// the storefront only needs read access by id.
func DeliveryOptions() []DeliveryOption {
	return []DeliveryOption{
		{ID: DeliveryStandard, Name: "Standard Delivery", Description: "Arrives in 3-5 days", Fee: 0},
		{ID: DeliveryExpress, Name: "Express Delivery", Description: "Arrives in 1-2 days", Fee: 1500},
	}
}

// DeliveryOptionByID looks up a delivery option by its identifier.
func DeliveryOptionByID(id string) (DeliveryOption, bool) {
	for _, opt := range DeliveryOptions() {
		if opt.ID == id {
			return opt, true
		}
	}
	return DeliveryOption{}, false
}
