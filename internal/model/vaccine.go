package model

import "time"

// Vaccine is a vaccine administered to a patient.
type Vaccine struct {
	ID          int64     `json:"id"`
	VaccineName string    `json:"vaccine_name"`
	DoseDate    time.Time `json:"dose_date"`
	DoseNumber  int32     `json:"dose_number"`
	VaccineType string    `json:"vaccine_type"`
	PatientID   int64     `json:"patient_id"`
}

// VaccineFields are the mutable attributes of a Vaccine. DoseDate is set
// once at creation and never updated.
type VaccineFields struct {
	VaccineName string
	DoseNumber  int32
	VaccineType string
	PatientID   int64
}

// VaccineWithDoses is a vaccine with its doses nested under it.
type VaccineWithDoses struct {
	Vaccine
	Doses []Dose `json:"doses"`
}

// CreateVaccinePayload creates a vaccine. DoseDate defaults to the
// creation time when omitted.
type CreateVaccinePayload struct {
	VaccineName string     `query:"vaccine_name" json:"vaccine_name"`
	DoseNumber  int32      `query:"dose_number" json:"dose_number"`
	VaccineType string     `query:"vaccine_type" json:"vaccine_type"`
	PatientID   int64      `query:"patient_id" json:"patient_id"`
	DoseDate    *time.Time `json:"dose_date"`
}

func (p *CreateVaccinePayload) Validate() error {
	return validate.Struct(p)
}

func (p *CreateVaccinePayload) Fields() VaccineFields {
	return VaccineFields{
		VaccineName: p.VaccineName,
		DoseNumber:  p.DoseNumber,
		VaccineType: p.VaccineType,
		PatientID:   p.PatientID,
	}
}

type UpdateVaccinePayload struct {
	ID          int64  `query:"id" json:"id" validate:"required,min=1"`
	VaccineName string `query:"vaccine_name" json:"vaccine_name"`
	DoseNumber  int32  `query:"dose_number" json:"dose_number"`
	VaccineType string `query:"vaccine_type" json:"vaccine_type"`
	PatientID   int64  `query:"patient_id" json:"patient_id"`
}

func (p *UpdateVaccinePayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateVaccinePayload) Fields() VaccineFields {
	return VaccineFields{
		VaccineName: p.VaccineName,
		DoseNumber:  p.DoseNumber,
		VaccineType: p.VaccineType,
		PatientID:   p.PatientID,
	}
}
