package models

import (
	"time"

	"github.com/dmitrijs2005/postplanner/internal/rpc"
)

// Wire converts p to the form shared by the gRPC and HTTP transports.
func (p Postcard) Wire() rpc.Postcard {
	w := rpc.Postcard{
		ID:               p.ID,
		PrimaryContent:   p.PrimaryContent,
		SecondaryContent: p.SecondaryContent,
		Template:         p.Template,
		State:            p.State,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.ScheduledDate != nil {
		w.ScheduledDate = p.ScheduledDate.Format(time.DateOnly)
	}
	return w
}
