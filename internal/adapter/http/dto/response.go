package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
)

// ClosingResponse represents a closing in API responses.
type ClosingResponse struct {
	ID                string               `json:"id"`
	LocationID        string               `json:"location_id"`
	Month             int                  `json:"month"`
	Year              int                  `json:"year"`
	TotalNetProfit    decimal.Decimal      `json:"total_net_profit"`
	RetainedAmount    decimal.Decimal      `json:"retained_amount"`
	DistributedAmount decimal.Decimal      `json:"distributed_amount"`
	Settlements       []SettlementResponse `json:"settlements,omitempty"`
	ClosedBy          string               `json:"closed_by"`
	CreatedAt         time.Time            `json:"created_at"`
}

// SettlementResponse represents one shareholder's settlement.
type SettlementResponse struct {
	ShareholderID         string          `json:"shareholder_id"`
	ShareholderName       string          `json:"shareholder_name"`
	PeriodShare           decimal.Decimal `json:"period_share"`
	PriorBalance          decimal.Decimal `json:"prior_balance"`
	AdvancesDeducted      decimal.Decimal `json:"advances_deducted"`
	FinalAmount           decimal.Decimal `json:"final_amount"`
	NewAccumulatedBalance decimal.Decimal `json:"new_accumulated_balance"`
}

// ClosingFromDomain converts domain closing to response.
func ClosingFromDomain(c *domain.ClosingRecord) *ClosingResponse {
	settlements := make([]SettlementResponse, len(c.Settlements))
	for i, s := range c.Settlements {
		settlements[i] = SettlementResponse{
			ShareholderID:         s.ShareholderID,
			ShareholderName:       s.ShareholderName,
			PeriodShare:           s.PeriodShare,
			PriorBalance:          s.PriorBalance,
			AdvancesDeducted:      s.AdvancesDeducted,
			FinalAmount:           s.FinalAmount,
			NewAccumulatedBalance: s.NewAccumulatedBalance,
		}
	}

	return &ClosingResponse{
		ID:                c.ID,
		LocationID:        c.LocationID,
		Month:             c.Month,
		Year:              c.Year,
		TotalNetProfit:    c.TotalNetProfit,
		RetainedAmount:    c.RetainedAmount,
		DistributedAmount: c.DistributedAmount,
		Settlements:       settlements,
		ClosedBy:          c.ClosedBy,
		CreatedAt:         c.CreatedAt,
	}
}

// ClosingsFromDomain converts domain closings to responses.
func ClosingsFromDomain(closings []*domain.ClosingRecord) []*ClosingResponse {
	result := make([]*ClosingResponse, len(closings))
	for i, c := range closings {
		result[i] = ClosingFromDomain(c)
	}
	return result
}

// PeriodStatusResponse reports whether a period is open or closed.
type PeriodStatusResponse struct {
	LocationID string `json:"location_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Closed     bool   `json:"closed"`
}

// ReadingResponse represents a meter reading in API responses.
type ReadingResponse struct {
	ID               string          `json:"id"`
	LocationID       string          `json:"location_id"`
	MachineID        string          `json:"machine_id"`
	ReadingDate      time.Time       `json:"reading_date"`
	PreviousCounter  int64           `json:"previous_counter"`
	CurrentCounter   int64           `json:"current_counter"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	CommissionPct    decimal.Decimal `json:"commission_pct"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ReadingFromDomain converts domain reading to response.
func ReadingFromDomain(r *domain.MeterReading) *ReadingResponse {
	return &ReadingResponse{
		ID:               r.ID,
		LocationID:       r.LocationID,
		MachineID:        r.MachineID,
		ReadingDate:      r.ReadingDate,
		PreviousCounter:  r.PreviousCounter,
		CurrentCounter:   r.CurrentCounter,
		UnitPrice:        r.UnitPrice,
		GrossAmount:      r.GrossAmount,
		CommissionPct:    r.CommissionPct,
		CommissionAmount: r.CommissionAmount,
		NetAmount:        r.NetAmount,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ReadingsFromDomain converts domain readings to responses.
func ReadingsFromDomain(readings []*domain.MeterReading) []*ReadingResponse {
	result := make([]*ReadingResponse, len(readings))
	for i, r := range readings {
		result[i] = ReadingFromDomain(r)
	}
	return result
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	LocationID  string          `json:"location_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		LocationID:  e.LocationID,
		ExpenseDate: e.ExpenseDate,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// AdvanceResponse represents an advance in API responses.
type AdvanceResponse struct {
	ID            string          `json:"id"`
	LocationID    string          `json:"location_id"`
	ShareholderID string          `json:"shareholder_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AdvanceFromDomain converts domain advance to response.
func AdvanceFromDomain(a *domain.Advance) *AdvanceResponse {
	return &AdvanceResponse{
		ID:            a.ID,
		LocationID:    a.LocationID,
		ShareholderID: a.ShareholderID,
		Month:         a.Month,
		Year:          a.Year,
		Amount:        a.Amount,
		Note:          a.Note,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
	}
}

// AdvancesFromDomain converts domain advances to responses.
func AdvancesFromDomain(advances []*domain.Advance) []*AdvanceResponse {
	result := make([]*AdvanceResponse, len(advances))
	for i, a := range advances {
		result[i] = AdvanceFromDomain(a)
	}
	return result
}

// ShareholderResponse represents a shareholder in API responses.
type ShareholderResponse struct {
	ID                 string          `json:"id"`
	LocationID         string          `json:"location_id"`
	Name               string          `json:"name"`
	Percentage         decimal.Decimal `json:"percentage"`
	ParticipatesInLoss bool            `json:"participates_in_loss"`
	AccumulatedBalance decimal.Decimal `json:"accumulated_balance"`
	LastClosingID      *string         `json:"last_closing_id,omitempty"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ShareholderFromDomain converts domain shareholder to response.
func ShareholderFromDomain(s *domain.Shareholder) *ShareholderResponse {
	return &ShareholderResponse{
		ID:                 s.ID,
		LocationID:         s.LocationID,
		Name:               s.Name,
		Percentage:         s.Percentage,
		ParticipatesInLoss: s.ParticipatesInLoss,
		AccumulatedBalance: s.AccumulatedBalance,
		LastClosingID:      s.LastClosingID,
		Active:             s.Active,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ShareholdersFromDomain converts domain shareholders to responses.
func ShareholdersFromDomain(shareholders []*domain.Shareholder) []*ShareholderResponse {
	result := make([]*ShareholderResponse, len(shareholders))
	for i, s := range shareholders {
		result[i] = ShareholderFromDomain(s)
	}
	return result
}

// SummaryResponse represents a period summary in API responses.
type SummaryResponse struct {
	LocationID       string          `json:"location_id"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	GrossSales       decimal.Decimal `json:"gross_sales"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

// SummaryFromDomain converts domain summary to response.
func SummaryFromDomain(s *domain.PeriodSummary) *SummaryResponse {
	return &SummaryResponse{
		LocationID:       s.LocationID,
		Month:            s.Month,
		Year:             s.Year,
		GrossSales:       s.GrossSales,
		TotalCommissions: s.TotalCommissions,
		TotalExpenses:    s.TotalExpenses,
		NetProfit:        s.NetProfit,
	}
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Detail       string    `json:"detail,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditLogFromDomain converts domain audit log to response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Detail:       l.Detail,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
