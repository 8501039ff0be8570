package domain

// CamperSex is fixed by product rule: camps on this platform serve a single
// program and every camper record carries the same value.
const CamperSex = "female"

// PickupContact is a person authorized to collect a camper.
type PickupContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Camper is one athlete entry within a checkout. The ID is generated
// client-side by the engine, never by the database.
type Camper struct {
	ID                    string          `json:"id"`
	AthleteID             *string         `json:"athleteId,omitempty"`
	IsNewAthlete          bool            `json:"isNewAthlete"`
	FirstName             string          `json:"firstName"`
	LastName              string          `json:"lastName"`
	DateOfBirth           string          `json:"dateOfBirth"`
	Sex                   string          `json:"sex"`
	Grade                 string          `json:"grade"`
	TShirtSize            string          `json:"tshirtSize"`
	MedicalNotes          string          `json:"medicalNotes"`
	Allergies             string          `json:"allergies"`
	SpecialConsiderations string          `json:"specialConsiderations"`
	AuthorizedPickups     []PickupContact `json:"authorizedPickups"`

	// Derived from DateOfBirth and the active camp's age bounds.
	Age        int  `json:"age"`
	IsEligible bool `json:"isEligible"`
}

// ParentInfo is the guardian contact record for the whole checkout.
type ParentInfo struct {
	FirstName                    string `json:"firstName"`
	LastName                     string `json:"lastName"`
	Email                        string `json:"email"`
	Phone                        string `json:"phone"`
	Address                      string `json:"address"`
	City                         string `json:"city"`
	State                        string `json:"state"`
	Zip                          string `json:"zip"`
	EmergencyContactName         string `json:"emergencyContactName"`
	EmergencyContactPhone        string `json:"emergencyContactPhone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship"`
}
