package rpc

import "time"

// Postcard is the wire form of a postcard. ScheduledDate is "YYYY-MM-DD" or
// empty.
type Postcard struct {
	ID               string    `json:"id"`
	PrimaryContent   string    `json:"primaryContent"`
	SecondaryContent string    `json:"secondaryContent"`
	Template         string    `json:"template,omitempty"`
	State            string    `json:"state"`
	ScheduledDate    string    `json:"scheduledDate,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ListRequest struct{}

type ListResponse struct {
	Postcards []Postcard `json:"postcards"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type GetResponse struct {
	Postcard Postcard `json:"postcard"`
}

type InsertRequest struct {
	PrimaryContent   string `json:"primaryContent"`
	SecondaryContent string `json:"secondaryContent"`
	Template         string `json:"template,omitempty"`
	State            string `json:"state,omitempty"`
	ScheduledDate    string `json:"scheduledDate,omitempty"`
}

type InsertResponse struct {
	Postcard Postcard `json:"postcard"`
}

// PatchRequest only touches the fields that are set.
type PatchRequest struct {
	ID               string  `json:"id"`
	PrimaryContent   *string `json:"primaryContent,omitempty"`
	SecondaryContent *string `json:"secondaryContent,omitempty"`
	Template         *string `json:"template,omitempty"`
	State            *string `json:"state,omitempty"`
	ScheduledDate    *string `json:"scheduledDate,omitempty"`
}

type PatchResponse struct {
	Postcard Postcard `json:"postcard"`
}

type RemoveRequest struct {
	ID string `json:"id"`
}

type RemoveResponse struct{}
