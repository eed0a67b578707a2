package usecase

// Published on RabbitMQ after a checkout commits; the loyalty consumer
// awards the points.
type TransactionCompletedMsg struct {
	TransactionID string  `json:"transactionId"`
	Customer      string  `json:"customer"`
	CustomerID    int64   `json:"customerId"`
	TotalPrice    float64 `json:"totalPrice"`
	PointsEarned  int     `json:"pointsEarned"`
	Reward        string  `json:"reward,omitempty"`
}

// Sent by the back-office menu tooling on Kafka whenever an item changes.
type MenuItemChangedMsg struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Calories int     `json:"calories"`
	Seasonal bool    `json:"seasonal"`
	Active   bool    `json:"active"`
}
