package model

import "time"

// Dose is a single dose record of a vaccine.
type Dose struct {
	ID              int64     `json:"id"`
	TypeDose        string    `json:"type_dose"`
	DoseDate        time.Time `json:"dose_date"`
	DoseNumber      int32     `json:"dose_number"`
	ApplicationType string    `json:"application_type"`
	VaccineID       int64     `json:"vaccine_id"`
}

// DoseFields are the mutable attributes of a Dose.
type DoseFields struct {
	TypeDose        string
	DoseNumber      int32
	ApplicationType string
	VaccineID       int64
}

type CreateDosePayload struct {
	TypeDose        string     `query:"type_dose" json:"type_dose"`
	DoseNumber      int32      `query:"dose_number" json:"dose_number"`
	ApplicationType string     `query:"application_type" json:"application_type"`
	VaccineID       int64      `query:"vaccine_id" json:"vaccine_id"`
	DoseDate        *time.Time `json:"dose_date"`
}

func (p *CreateDosePayload) Validate() error {
	return validate.Struct(p)
}

func (p *CreateDosePayload) Fields() DoseFields {
	return DoseFields{
		TypeDose:        p.TypeDose,
		DoseNumber:      p.DoseNumber,
		ApplicationType: p.ApplicationType,
		VaccineID:       p.VaccineID,
	}
}

type UpdateDosePayload struct {
	ID              int64  `query:"id" json:"id" validate:"required,min=1"`
	TypeDose        string `query:"type_dose" json:"type_dose"`
	DoseNumber      int32  `query:"dose_number" json:"dose_number"`
	ApplicationType string `query:"application_type" json:"application_type"`
	VaccineID       int64  `query:"vaccine_id" json:"vaccine_id"`
}

func (p *UpdateDosePayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateDosePayload) Fields() DoseFields {
	return DoseFields{
		TypeDose:        p.TypeDose,
		DoseNumber:      p.DoseNumber,
		ApplicationType: p.ApplicationType,
		VaccineID:       p.VaccineID,
	}
}
