package models

import "time"

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

type UserPreferences struct {
	Regions       []string       `bson:"regions" json:"regions"`
	SafetyLevel   SafetyGradient `bson:"safetyLevel" json:"safetyLevel"`
	Accessibility bool           `bson:"accessibility" json:"accessibility"`
	Budget        BudgetTier     `bson:"budget" json:"budget"`
	Interests     []string       `bson:"interests" json:"interests"`
	Language      string         `bson:"language" json:"language"`
}

// Normalize fills unset preference fields with their defaults.
func (p *UserPreferences) Normalize() {
	if p.Regions == nil {
		p.Regions = []string{}
	}
	if p.SafetyLevel == "" {
		p.SafetyLevel = SafetyMedium
	}
	if p.Budget == "" {
		p.Budget = BudgetMedium
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Language == "" {
		p.Language = "en"
	}
}

// User documents are keyed by the auth provider's user id and upserted, never
// deleted.
type User struct {
	ID                string          `bson:"_id" json:"id"`
	Name              string          `bson:"name,omitempty" json:"name,omitempty"`
	Email             string          `bson:"email,omitempty" json:"email,omitempty"`
	Wallet            string          `bson:"wallet,omitempty" json:"wallet,omitempty"`
	WalletConnectedAt *time.Time      `bson:"walletConnectedAt,omitempty" json:"walletConnectedAt,omitempty"`
	Preferences       UserPreferences `bson:"preferences" json:"preferences"`
	CreatedAt         time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt" json:"updatedAt"`
}
