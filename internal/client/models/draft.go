package models

// Draft is the editable part of a postcard: what an editor buffer holds and
// what autosave commits.
type Draft struct {
	PrimaryContent   string   `json:"primaryContent"`
	SecondaryContent string   `json:"secondaryContent"`
	Template         Template `json:"template,omitempty"`
}

// DraftOf extracts the editable fields of p.
func DraftOf(p Postcard) Draft {
	return Draft{
		PrimaryContent:   p.PrimaryContent,
		SecondaryContent: p.SecondaryContent,
		Template:         p.Template,
	}
}

// Fields turns the draft into creation fields for a new draft postcard.
func (d Draft) Fields() Fields {
	return Fields{
		PrimaryContent:   d.PrimaryContent,
		SecondaryContent: d.SecondaryContent,
		Template:         d.Template,
		State:            StateDraft,
	}
}

// Patch turns the draft into a patch overwriting every editable field.
func (d Draft) Patch() Patch {
	primary, secondary, tmpl := d.PrimaryContent, d.SecondaryContent, d.Template
	return Patch{PrimaryContent: &primary, SecondaryContent: &secondary, Template: &tmpl}
}
