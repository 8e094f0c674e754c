package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/usecase"
)

// CloseMonthRequest represents a request to close a location's month.
type CloseMonthRequest struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	RetainedAmount decimal.Decimal `json:"retained_amount"`

	// ExpectedNetProfit rejects the closing when the period's numbers
	// changed after the operator reviewed them.
	ExpectedNetProfit *decimal.Decimal `json:"expected_net_profit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseMonthRequest) ToUseCaseInput(locationID, closedBy string) usecase.CloseMonthInput {
	return usecase.CloseMonthInput{
		LocationID:        locationID,
		Month:             r.Month,
		Year:              r.Year,
		RetainedAmount:    r.RetainedAmount,
		ClosedBy:          closedBy,
		ExpectedNetProfit: r.ExpectedNetProfit,
	}
}

// CreateReadingRequest represents a request to record a meter reading.
type CreateReadingRequest struct {
	MachineID       string          `json:"machine_id"`
	ReadingDate     time.Time       `json:"reading_date"`
	PreviousCounter int64           `json:"previous_counter"`
	CurrentCounter  int64           `json:"current_counter"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CommissionPct   decimal.Decimal `json:"commission_pct"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReadingRequest) ToUseCaseInput(locationID, createdBy string) usecase.CreateReadingInput {
	return usecase.CreateReadingInput{
		LocationID:      locationID,
		MachineID:       r.MachineID,
		ReadingDate:     r.ReadingDate,
		PreviousCounter: r.PreviousCounter,
		CurrentCounter:  r.CurrentCounter,
		UnitPrice:       r.UnitPrice,
		CommissionPct:   r.CommissionPct,
		CreatedBy:       createdBy,
	}
}

// UpdateReadingRequest represents a request to edit a meter reading.
type UpdateReadingRequest struct {
	ReadingDate     time.Time       `json:"reading_date"`
	PreviousCounter int64           `json:"previous_counter"`
	CurrentCounter  int64           `json:"current_counter"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CommissionPct   decimal.Decimal `json:"commission_pct"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateReadingRequest) ToUseCaseInput(id, updatedBy string) usecase.UpdateReadingInput {
	return usecase.UpdateReadingInput{
		ID:              id,
		ReadingDate:     r.ReadingDate,
		PreviousCounter: r.PreviousCounter,
		CurrentCounter:  r.CurrentCounter,
		UnitPrice:       r.UnitPrice,
		CommissionPct:   r.CommissionPct,
		UpdatedBy:       updatedBy,
	}
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(locationID, createdBy string) usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		LocationID:  locationID,
		ExpenseDate: r.ExpenseDate,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		CreatedBy:   createdBy,
	}
}

// UpdateExpenseRequest represents a request to edit an expense.
type UpdateExpenseRequest struct {
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput(id, updatedBy string) usecase.UpdateExpenseInput {
	return usecase.UpdateExpenseInput{
		ID:          id,
		ExpenseDate: r.ExpenseDate,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		UpdatedBy:   updatedBy,
	}
}

// CreateAdvanceRequest represents a request to record a cash advance.
type CreateAdvanceRequest struct {
	ShareholderID string          `json:"shareholder_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAdvanceRequest) ToUseCaseInput(locationID, createdBy string) usecase.CreateAdvanceInput {
	return usecase.CreateAdvanceInput{
		LocationID:    locationID,
		ShareholderID: r.ShareholderID,
		Month:         r.Month,
		Year:          r.Year,
		Amount:        r.Amount,
		Note:          r.Note,
		CreatedBy:     createdBy,
	}
}

// CreateShareholderRequest represents a request to register a shareholder.
type CreateShareholderRequest struct {
	Name               string          `json:"name"`
	Percentage         decimal.Decimal `json:"percentage"`
	ParticipatesInLoss bool            `json:"participates_in_loss"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateShareholderRequest) ToUseCaseInput(locationID string) usecase.CreateShareholderInput {
	return usecase.CreateShareholderInput{
		LocationID:         locationID,
		Name:               r.Name,
		Percentage:         r.Percentage,
		ParticipatesInLoss: r.ParticipatesInLoss,
	}
}
