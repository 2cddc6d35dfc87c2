package domain

// Action is the cart operation requested by a voice command.
type Action string

// Recognised actions.
const (
	// ActionAdd adds a product to the cart.
	ActionAdd Action = "add"

	// ActionDelete removes a product from the cart.
	ActionDelete Action = "delete"

	// ActionUnknown means no intent pattern matched.
	ActionUnknown Action = "unknown"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionAdd, ActionDelete, ActionUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// Language tags attached to parsed intents.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
)

// ParsedIntent is the structured form of a voice command.
// Quantity is always at least 1.
type ParsedIntent struct {
	// Action is add, delete or unknown.
	Action Action `json:"action"`

	// Quantity is the number of units requested.
	Quantity int `json:"quantity"`

	// Item is the free-text product name, possibly empty.
	Item string `json:"item"`

	// Lang is the detected source language tag, if any.
	Lang string `json:"lang,omitempty"`
}

// UnknownIntent returns the intent used when nothing could be understood.
func UnknownIntent(item string) ParsedIntent {
	return ParsedIntent{
		Action:   ActionUnknown,
		Quantity: 1,
		Item:     item,
	}
}

// IsActionable returns true if the intent names an action and an item.
func (p ParsedIntent) IsActionable() bool {
	return p.Action != ActionUnknown && p.Item != ""
}

// ClampQuantity returns q, or 1 when q is below 1.
// Spoken "zero" quantities are treated as a single unit.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
