package domain

// CartItem is a line in the shopping cart.
// Lines with the same name are merged; ServerIDs keeps every backing id.
type CartItem struct {
	// ID is the primary server id, or a local-* id for optimistic lines.
	ID string `json:"id"`

	// ServerIDs holds all server ids merged into this line.
	ServerIDs []string `json:"server_ids,omitempty"`

	// Name is the product name.
	Name string `json:"name"`

	// Quantity is the number of units.
	Quantity int `json:"quantity"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Image is an optional image URL.
	Image string `json:"image,omitempty"`
}

// HasServerID reports whether id belongs to this line.
func (c CartItem) HasServerID(id string) bool {
	if c.ID == id {
		return true
	}
	for _, sid := range c.ServerIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// IsLocal returns true if the line has not been persisted by the server.
func (c CartItem) IsLocal() bool {
	return len(c.ServerIDs) == 0
}

// Total returns quantity times unit price.
func (c CartItem) Total() float64 {
	return float64(c.Quantity) * c.Price
}

// AddItemRequest is the payload sent to the cart API.
type AddItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CommandStatus classifies a handled voice command for the user.
type CommandStatus string

// Command statuses.
const (
	StatusAdded         CommandStatus = "added"
	StatusDeleted       CommandStatus = "deleted"
	StatusNotFound      CommandStatus = "not_found"
	StatusNotUnderstood CommandStatus = "not_understood"
	StatusFailed        CommandStatus = "failed"
	StatusEmpty         CommandStatus = "empty"
)

// CommandReport is the user-facing result of a voice command.
type CommandReport struct {
	// Outcome is the interpretation, nil if processing failed entirely.
	Outcome *CommandOutcome `json:"outcome,omitempty"`

	// Status classifies the result.
	Status CommandStatus `json:"status"`

	// Message is the text shown to the user.
	Message string `json:"message"`

	// Item is the affected cart line, if any.
	Item *CartItem `json:"item,omitempty"`

	// Err is the underlying error for failed statuses.
	Err error `json:"-"`
}
