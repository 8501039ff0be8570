package domain

import "time"

// Athlete is a previously registered athlete profile kept on the account,
// used to prefill a camper entry.
type Athlete struct {
	ID           string    `json:"id"`
	ParentEmail  string    `json:"parentEmail,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	Grade        string    `json:"grade"`
	TShirtSize   string    `json:"tshirt_size"`
	MedicalNotes string    `json:"medical_notes"`
	Allergies    string    `json:"allergies"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ParentProfile is the stored account contact record used to prefill
// ParentInfo.
type ParentProfile struct {
	ID                           string    `json:"id"`
	FirstName                    string    `json:"firstName"`
	LastName                     string    `json:"lastName"`
	Email                        string    `json:"email"`
	Phone                        string    `json:"phone"`
	Address                      string    `json:"address"`
	City                         string    `json:"city"`
	State                        string    `json:"state"`
	Zip                          string    `json:"zip"`
	EmergencyContactName         string    `json:"emergencyContactName"`
	EmergencyContactPhone        string    `json:"emergencyContactPhone"`
	EmergencyContactRelationship string    `json:"emergencyContactRelationship"`
	CreatedAt                    time.Time `json:"createdAt"`
}
