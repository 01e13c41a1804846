package client

import "time"

// Property is a single property book record. Field names follow the server's
// JSON contract.
type Property struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	SerialNumber    string     `json:"serialNumber"`
	Description     *string    `json:"description"`
	NSN             *string    `json:"nsn"`
	LIN             *string    `json:"lin"`
	CurrentStatus   string     `json:"currentStatus"`
	Condition       string     `json:"condition"`
	Location        *string    `json:"location"`
	AssignedToUser  *uint      `json:"assignedToUserId"`
	Quantity        int        `json:"quantity"`
	UnitPrice       float64    `json:"unitPrice"`
	AcquisitionDate *time.Time `json:"acquisitionDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// User is a person record returned by the server-side people search.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Rank      string `json:"rank"`
	Unit      string `json:"unit"`
	Phone     string `json:"phone"`
}

// FullName returns "Rank First Last" with missing parts skipped.
func (u User) FullName() string {
	name := u.FirstName + " " + u.LastName
	if u.Rank != "" {
		return u.Rank + " " + name
	}
	return name
}

// Transfer is a custody transfer between two users.
type Transfer struct {
	ID           uint       `json:"id"`
	PropertyID   uint       `json:"propertyId"`
	FromUserID   uint       `json:"fromUserId"`
	ToUserID     uint       `json:"toUserId"`
	Status       string     `json:"status"`
	TransferType string     `json:"transferType"`
	Notes        *string    `json:"notes"`
	RequestDate  time.Time  `json:"requestDate"`
	ResolvedDate *time.Time `json:"resolvedDate"`
}

// CatalogItem is a reference catalog (NSN) record from the server-side
// universal search.
type CatalogItem struct {
	NSN          string  `json:"nsn"`
	LIN          string  `json:"lin"`
	Nomenclature string  `json:"nomenclature"`
	FSC          string  `json:"fsc"`
	NIIN         string  `json:"niin"`
	UnitPrice    float64 `json:"unit_price"`
	Manufacturer string  `json:"manufacturer"`
	PartNumber   string  `json:"part_number"`
}

// TransferFilter narrows the transfers listing. Zero values mean no filter.
type TransferFilter struct {
	Status    string
	Direction string
}

// Server response envelopes. The API wraps each collection in a keyed object.

type propertiesResponse struct {
	Properties []Property `json:"properties"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type transfersResponse struct {
	Transfers []Transfer `json:"transfers"`
}

type catalogResponse struct {
	Success bool          `json:"success"`
	Data    []CatalogItem `json:"data"`
	Error   string        `json:"error,omitempty"`
}
