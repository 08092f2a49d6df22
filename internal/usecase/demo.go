package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/aalvaropc/payflow/internal/domain"
)

// DemoScenario is the hardcoded scenario run when payflow starts without arguments:
// a 100 USD card payment for a customer reachable by email.
func DemoScenario() domain.Scenario {
	return domain.Scenario{
		Name: "demo",
		Transactions: []domain.ScenarioTransaction{
			{
				Name: "card payment",
				Customer: domain.CustomerData{
					Name: "John Doe",
					ID:   "cus_demo_001",
					Contact: domain.ContactInfo{
						Email: "john.doe@example.com",
						Phone: "+15555550100",
					},
				},
				Payment: domain.PaymentData{
					Amount:   decimal.NewFromInt(100),
					Currency: "USD",
					Type:     domain.PaymentCard,
					Source:   "tok_visa",
				},
			},
		},
	}
}
