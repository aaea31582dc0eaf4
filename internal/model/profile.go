package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyName = errors.New("model: name is required")

type PersonalInfo struct {
	Name           string     `json:"name"`
	Age            *int       `json:"age,omitempty"`
	SpiritualGoals []string   `json:"spiritualGoals"`
	ContractSigned bool       `json:"contractSigned"`
	SignatureDate  *time.Time `json:"signatureDate,omitempty"`
}

func (p PersonalInfo) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Age != nil && (*p.Age <= 0 || *p.Age > 150) {
		return errors.New("model: age out of range")
	}
	return nil
}

// UserProfile is the optional sign-in identity.
type UserProfile struct {
	Provider string `json:"provider,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

func (u UserProfile) SignedIn() bool {
	return strings.TrimSpace(u.Provider) != "" && strings.TrimSpace(u.Email) != ""
}

func (u UserProfile) Validate() error {
	if strings.TrimSpace(u.Provider) == "" {
		return errors.New("model: sign-in provider is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("model: sign-in email is invalid")
	}
	return nil
}

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RescueSettings struct {
	Enabled               bool      `json:"enabled"`
	QuoteCategories       []string  `json:"rescueQuoteCategories"`
	AutoPlayAudio         bool      `json:"autoPlayAudio"`
	ShowBreathingExercise bool      `json:"showBreathingExercise"`
	EmergencyContacts     []Contact `json:"emergencyContacts"`
	CustomPrayers         []string  `json:"customPrayers"`
}

func (r RescueSettings) Validate() error {
	for _, c := range r.EmergencyContacts {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
			return errors.New("model: emergency contact needs name and phone")
		}
	}
	return nil
}

func DefaultRescueSettings() RescueSettings {
	return RescueSettings{
		Enabled:               true,
		QuoteCategories:       []string{"Temptation & Victory", "Peace & Courage"},
		AutoPlayAudio:         true,
		ShowBreathingExercise: true,
		EmergencyContacts:     []Contact{},
		CustomPrayers:         []string{},
	}
}
