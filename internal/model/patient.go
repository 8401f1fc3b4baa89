package model

// Patient is a person receiving vaccines.
type Patient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// PatientFields are the mutable attributes of a Patient.
type PatientFields struct {
	Name     string
	LastName string
}

// PatientWithVaccines is a patient with every vaccine, and each vaccine's
// doses, nested under it.
type PatientWithVaccines struct {
	Patient
	Vaccines []VaccineWithDoses `json:"vaccines"`
}

type CreatePatientPayload struct {
	Name     string `query:"name" json:"name"`
	LastName string `query:"last_name" json:"last_name"`
}

func (p *CreatePatientPayload) Validate() error {
	return validate.Struct(p)
}

func (p *CreatePatientPayload) Fields() PatientFields {
	return PatientFields{Name: p.Name, LastName: p.LastName}
}

type UpdatePatientPayload struct {
	ID       int64  `query:"id" json:"id" validate:"required,min=1"`
	Name     string `query:"name" json:"name"`
	LastName string `query:"last_name" json:"last_name"`
}

func (p *UpdatePatientPayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdatePatientPayload) Fields() PatientFields {
	return PatientFields{Name: p.Name, LastName: p.LastName}
}
