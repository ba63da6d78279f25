package detect

type Item struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency,omitempty"`
	Category   string `json:"category,omitempty"`
	Cycle      string `json:"cycle,omitempty"`
	NextCharge string `json:"next_charge_at,omitempty"`
}
