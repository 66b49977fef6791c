package handlers

import (
	"net/http"

	"github.com/codenuga/ledger-api/internal/api/middleware"
	"github.com/codenuga/ledger-api/internal/ledger"
)

// Response formats selectable per request.
const (
	formatJSON  = "json"
	formatPlain = "plain"
)

// Respond writes the result in the requested format. The plain format
// renders the result's fixed text form for chat-bot and shortcut clients;
// anything else falls back to JSON.
func Respond(w http.ResponseWriter, format string, result ledger.Result) {
	if format == formatPlain {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(result.PlainText()))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// RespondError writes a failed operation in the requested format. Domain
// failures are reported with status 200 and success=false, matching the
// behavior the workspace automations depend on.
func RespondError(w http.ResponseWriter, format string, err error) {
	Respond(w, format, ledger.NewErrorResult(err))
}
