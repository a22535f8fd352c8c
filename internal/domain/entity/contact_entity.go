package entity

import "time"

// ServiceFlags are the fixed interest categories of a contact submission.
// All four keys are always present; unset ones are false.
type ServiceFlags struct {
	Website  bool `json:"website"`
	UX       bool `json:"ux"`
	Strategy bool `json:"strategy"`
	Other    bool `json:"other"`
}

// Selected returns the names of the enabled flags in declaration order.
func (f ServiceFlags) Selected() []string {
	var out []string
	if f.Website {
		out = append(out, "website")
	}
	if f.UX {
		out = append(out, "ux")
	}
	if f.Strategy {
		out = append(out, "strategy")
	}
	if f.Other {
		out = append(out, "other")
	}
	return out
}

// ContactMessage is an inbound support submission. Never mutated after creation.
type ContactMessage struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Subject   string       `json:"subject,omitempty"`
	Message   string       `json:"message"`
	Services  ServiceFlags `json:"services"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
