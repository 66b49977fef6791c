package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codenuga/ledger-api/internal/api/middleware"
	"github.com/codenuga/ledger-api/internal/ledger"
)

// LedgerHandler serves the card and transaction endpoints under /financial.
type LedgerHandler struct {
	engine   *ledger.StatusEngine
	recorder *ledger.Recorder
	periods  *ledger.PeriodResolver
	// workspace is the Notion workspace slug used in page URLs.
	workspace string
	now       func() time.Time
	log       zerolog.Logger
}

// NewLedgerHandler creates the /financial handler.
func NewLedgerHandler(engine *ledger.StatusEngine, recorder *ledger.Recorder, periods *ledger.PeriodResolver, workspace string, log zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		engine:    engine,
		recorder:  recorder,
		periods:   periods,
		workspace: workspace,
		now:       time.Now,
		log:       log,
	}
}

// Register mounts every /financial route on the mux.
func (h *LedgerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/financial/get-expense", postOnly(h.GetExpense))
	mux.HandleFunc("/financial/update-expense", postOnly(h.UpdateExpense))
	mux.HandleFunc("/financial/get-last-performance", postOnly(h.GetLastPerformance))
	mux.HandleFunc("/financial/check-last-performance", postOnly(h.CheckLastPerformance))
	mux.HandleFunc("/financial/get-month-remaining", postOnly(h.GetMonthRemaining))
	mux.HandleFunc("/financial/get-card-status", postOnly(h.GetCardStatus))
	mux.HandleFunc("/financial/get-all-card-status", postOnly(h.GetAllCardStatus))
	mux.HandleFunc("/financial/add-expense", postOnly(h.AddExpense))
	mux.HandleFunc("/financial/check-month-page", postOnly(h.CheckMonthPage))
	mux.HandleFunc("/financial/get-current-month-page", postOnly(h.GetCurrentMonthPage))
}

// postOnly rejects anything but POST before dispatching to the handler.
func postOnly(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		handler(w, r)
	}
}

type cardRequest struct {
	CardID string `json:"cardId"`
	Format string `json:"format"`
}

type updateExpenseRequest struct {
	CardID string      `json:"cardId"`
	Value  interface{} `json:"value"`
	Format string      `json:"format"`
}

// flexAmount accepts the amount as either a JSON number or a numeric string.
type flexAmount int64

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if n == "" {
		*a = 0
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		// Truncate fractional amounts instead of rejecting them.
		f, ferr := n.Float64()
		if ferr != nil {
			return err
		}
		v = int64(f)
	}
	*a = flexAmount(v)
	return nil
}

// addExpenseRequest carries one transaction. The field names are the Korean
// keys the workspace automations send.
type addExpenseRequest struct {
	Title     string     `json:"지출명"`
	Category  string     `json:"카테고리명"`
	Amount    flexAmount `json:"금액"`
	Payer     string     `json:"누구"`
	YearMonth string     `json:"연월"`
	Card      string     `json:"카드"`
	Note      string     `json:"비고"`
	Date      string     `json:"언제"`
	Format    string     `json:"format"`
}

type monthRequest struct {
	YearMonth string `json:"yearmonth"`
	Format    string `json:"format"`
}

type formatRequest struct {
	Format string `json:"format"`
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// GetExpense handles POST /financial/get-expense
func (h *LedgerHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CardID == "" {
		RespondError(w, req.Format, errors.New("cardId가 필요합니다."))
		return
	}

	expense, err := h.engine.CurrentExpense(r.Context(), req.CardID)
	if err != nil {
		h.log.Error().Err(err).Str("card", req.CardID).Msg("Failed to read current expense")
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.ExpenseResult{Success: true, Expense: expense})
}

// UpdateExpense handles POST /financial/update-expense
func (h *LedgerHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CardID == "" {
		RespondError(w, req.Format, errors.New("cardId가 필요합니다."))
		return
	}
	if req.Value == nil {
		RespondError(w, req.Format, errors.New("업데이트할 값이 필요합니다."))
		return
	}

	if err := h.recorder.SetCurrentExpense(r.Context(), req.CardID, req.Value); err != nil {
		h.log.Error().Err(err).Str("card", req.CardID).Msg("Failed to update current expense")
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.AckResult{Success: true})
}

// GetLastPerformance handles POST /financial/get-last-performance
func (h *LedgerHandler) GetLastPerformance(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CardID == "" {
		RespondError(w, req.Format, errors.New("cardId가 필요합니다."))
		return
	}

	text, amount, err := h.engine.LastPerformance(r.Context(), req.CardID)
	if err != nil {
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.PerformanceResult{
		Success:                  true,
		FormattedLastPerformance: text,
		LastPerformance:          amount,
	})
}

// CheckLastPerformance handles POST /financial/check-last-performance
func (h *LedgerHandler) CheckLastPerformance(w http.ResponseWriter, r *http.Request) {
	h.withStatus(w, r, func(s *ledger.Status) ledger.Result {
		return ledger.NewStatusCheckResult(s)
	})
}

// GetMonthRemaining handles POST /financial/get-month-remaining
func (h *LedgerHandler) GetMonthRemaining(w http.ResponseWriter, r *http.Request) {
	h.withStatus(w, r, func(s *ledger.Status) ledger.Result {
		return ledger.NewRemainingResult(s)
	})
}

// GetCardStatus handles POST /financial/get-card-status
func (h *LedgerHandler) GetCardStatus(w http.ResponseWriter, r *http.Request) {
	h.withStatus(w, r, func(s *ledger.Status) ledger.Result {
		return ledger.NewCardStatusResult(s)
	})
}

// withStatus runs the shared card-status pipeline and renders the computed
// status through the endpoint-specific result constructor.
func (h *LedgerHandler) withStatus(w http.ResponseWriter, r *http.Request, result func(*ledger.Status) ledger.Result) {
	var req cardRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CardID == "" {
		RespondError(w, req.Format, errors.New("cardId가 필요합니다."))
		return
	}

	status, err := h.engine.ComputeStatus(r.Context(), req.CardID)
	if err != nil {
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, result(status))
}

// GetAllCardStatus handles POST /financial/get-all-card-status
func (h *LedgerHandler) GetAllCardStatus(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decode(w, r, &req) {
		return
	}

	all, err := h.engine.ComputeAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute card statuses")
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.NewAllCardStatusResult(all))
}

// AddExpense handles POST /financial/add-expense
func (h *LedgerHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	pageID, err := h.recorder.AddExpense(r.Context(), ledger.ExpenseInput{
		Title:     req.Title,
		Category:  req.Category,
		Amount:    int64(req.Amount),
		Payer:     req.Payer,
		YearMonth: req.YearMonth,
		Card:      req.Card,
		Note:      req.Note,
		Date:      req.Date,
	})
	if err != nil {
		h.log.Error().Err(err).Str("card", req.Card).Msg("Failed to add expense")
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.AddExpenseResult{
		Success: true,
		Message: "사용내역이 추가되었습니다.",
		PageID:  pageID,
	})
}

// CheckMonthPage handles POST /financial/check-month-page
func (h *LedgerHandler) CheckMonthPage(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if !decode(w, r, &req) {
		return
	}
	if req.YearMonth == "" {
		RespondError(w, req.Format, errors.New("yearmonth가 필요합니다."))
		return
	}

	_, err := h.periods.ResolveToken(r.Context(), req.YearMonth)
	if err != nil {
		var notFoundErr *ledger.PeriodNotFoundError
		if errors.As(err, &notFoundErr) {
			Respond(w, req.Format, ledger.MessageResult{
				Success: false,
				Message: "해당 월이 없습니다. Notion에서 [한 달 생성]을 실행하세요",
			})
			return
		}
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.AckResult{Success: true})
}

// GetCurrentMonthPage handles POST /financial/get-current-month-page
func (h *LedgerHandler) GetCurrentMonthPage(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decode(w, r, &req) {
		return
	}

	now := h.now()
	token := ledger.CurrentToken(now)
	title := ledger.MonthTitle(token)

	pageID, err := h.periods.ResolveCurrent(r.Context(), now)
	if err != nil {
		var notFoundErr *ledger.PeriodNotFoundError
		if errors.As(err, &notFoundErr) {
			Respond(w, req.Format, ledger.MessageResult{
				Success: false,
				Message: fmt.Sprintf("이번 달(%s) 페이지가 없습니다. Notion에서 [한 달 생성]을 실행하세요", title),
			})
			return
		}
		RespondError(w, req.Format, err)
		return
	}

	pageURL := fmt.Sprintf("https://www.notion.so/%s/%d-%d-%s",
		h.workspace, now.Year(), int(now.Month()), strings.ReplaceAll(pageID, "-", ""))

	Respond(w, req.Format, ledger.MonthPageResult{
		Success:    true,
		PageURL:    pageURL,
		MonthTitle: title,
		YearMonth:  token,
	})
}
