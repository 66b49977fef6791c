package ledger

// Property names of the Notion databases this service operates on. The
// workspace schema is Korean; the names here must match it byte for byte.
const (
	// Payment-method pages
	propLastPerformance = "전월실적"
	propCurrentExpense  = "금월지출"

	// Monthly aggregate pages
	propMonthTitle   = "연월구분"
	propMonthIncome  = "수입"
	propMonthExpense = "지출"
	propMonthBalance = "잔액"
	propMonthBudget  = "지출 예산"

	// Expense pages
	propDetail          = "상세내역"
	propKind            = "구분"
	propCategory        = "지출항목"
	propAmount          = "금액"
	propPayer           = "누구"
	propTxDate          = "거래일자"
	propFixedExpense    = "고정지출 여부"
	propMonthRelation   = "월별 통계 지출 relation"
	propPaymentRelation = "결제 수단"
	propNote            = "비고"

	// Select value marking an expense row
	kindExpense = "지출"
)
