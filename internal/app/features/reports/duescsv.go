// internal/app/features/reports/duescsv.go
package reports

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// ServeDuesCSV streams the dues ledger with derived overdue statuses.
// GET /reports/dues.csv?status=&member=
func (h *Handler) ServeDuesCSV(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.DuePending, models.DuePaid, models.DueOverdue:
	default:
		uierrors.RenderUnprocessable(w, `status must be "pending"|"paid"|"overdue"`)
		return
	}
	memberID, ok := queryMemberID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	dues, err := h.Svc.ListDues(ctx, status, memberID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dues export", err, "")
		return
	}

	setCSVHeaders(w, "dues.csv")
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Period", "Member", "Member ID", "Amount", "Due Date", "Status", "Paid Date", "Receipt"})

	for _, d := range dues {
		paidDate := ""
		if d.PaidDate != nil {
			paidDate = d.PaidDate.UTC().Format(models.DateLayout)
		}
		_ = cw.Write([]string{
			d.Period,
			d.MemberName,
			d.MemberID.Hex(),
			strconv.FormatInt(d.Amount, 10),
			d.DueDate,
			d.Status,
			paidDate,
			d.ReceiptNo,
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Warn("dues csv write", zap.Error(err))
	}
}
